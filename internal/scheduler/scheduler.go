package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/buildtrack/sitereport/internal/config"
	"github.com/buildtrack/sitereport/internal/domain/models"
	"github.com/buildtrack/sitereport/internal/service/report"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reportSvc *report.Service
	cfg       config.Config
	location  *time.Location
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, reportSvc *report.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Reporting.Timezone))
		location = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		reportSvc: reportSvc,
		cfg:       cfg,
		location:  location,
		logger:    logger,
	}
}

// Start schedules the end-of-day report email and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.sendDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report email", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendDailyReport() {
	today := time.Now().In(s.location).Format(models.DateLayout)
	s.logger.Info("sending end-of-day report email", zap.String("date", today))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	_, err := s.reportSvc.EmailReport(ctx, today, s.cfg.Reporting.Recipient)
	switch {
	case err == nil:
		s.logger.Info("daily report email prepared", zap.String("date", today))
	case errors.Is(err, report.ErrNoReport):
		s.logger.Info("no report entered today, skipping email", zap.String("date", today))
	default:
		s.logger.Error("failed to send daily report email", zap.String("date", today), zap.Error(err))
	}
}
