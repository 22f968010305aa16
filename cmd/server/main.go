package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/buildtrack/sitereport/internal/config"
	"github.com/buildtrack/sitereport/internal/repository/memory"
	"github.com/buildtrack/sitereport/internal/repository/mongodb"
	"github.com/buildtrack/sitereport/internal/repository/sheets"
	"github.com/buildtrack/sitereport/internal/scheduler"
	"github.com/buildtrack/sitereport/internal/server/handlers"
	"github.com/buildtrack/sitereport/internal/server/router"
	reportsvc "github.com/buildtrack/sitereport/internal/service/report"
	"github.com/buildtrack/sitereport/pkg/clients/emailfn"
	"github.com/buildtrack/sitereport/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := memory.NewStore(cfg.Project.Name, cfg.Project.Client)

	var archiver mongodb.Archiver
	if cfg.ArchiveEnabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archiver = mongoRepo
		baseLogger.Info("report archive enabled")
	} else {
		baseLogger.Warn("mongodb uri missing, report archiving disabled")
	}

	var ledger sheets.Ledger
	if cfg.LedgerEnabled() {
		ledger, err = sheets.NewGoogleSheetLedger(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		baseLogger.Info("cost ledger enabled")
	} else {
		baseLogger.Warn("ledger spreadsheet missing, cost ledger disabled")
	}

	var mailer emailfn.Client
	if cfg.EmailEnabled() {
		mailer = emailfn.NewClient(cfg.EmailFn)
		baseLogger.Info("report-email function client enabled")
	} else {
		baseLogger.Warn("email function url missing, report emailing disabled")
	}

	reportSvc := reportsvc.NewService(store, archiver, ledger, mailer, baseLogger.Named("svc.report"))
	reportHandler := handlers.NewReportHandler(reportSvc, baseLogger.Named("handlers.report"))
	engine := router.New(reportHandler, baseLogger.Named("router"))

	// The evening report email only runs when both the email function and a
	// recipient are configured.
	if cfg.ScheduledEmailEnabled() {
		sched := scheduler.NewScheduler(*cfg, reportSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Info("scheduled report email disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
