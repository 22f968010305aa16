// Package report implements the report editing service: row edits with
// derived-field rules, carry-forward, export, and the submit/email
// hand-offs to external collaborators.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/buildtrack/sitereport/internal/domain/models"
	"github.com/buildtrack/sitereport/internal/domain/rates"
	"github.com/buildtrack/sitereport/internal/repository/memory"
	"github.com/buildtrack/sitereport/internal/repository/mongodb"
	"github.com/buildtrack/sitereport/internal/repository/sheets"
	"github.com/buildtrack/sitereport/internal/service/costing"
	"github.com/buildtrack/sitereport/pkg/clients/emailfn"
)

var (
	// ErrNoReport means the requested date has no record.
	ErrNoReport = errors.New("no report for the requested date")
	// ErrNoPriorReport means a carry-forward source date has no record.
	ErrNoPriorReport = errors.New("no prior report to carry forward")
	// ErrUnknownSection means the request named a collection that does not exist.
	ErrUnknownSection = errors.New("unknown report section")
	// ErrEmailNotConfigured means no report-email function is wired.
	ErrEmailNotConfigured = errors.New("report-email function is not configured")
)

// Service owns the record store and exposes every core operation. The
// archive, ledger, and mailer collaborators are optional; a nil value
// disables that hand-off.
type Service struct {
	store    *memory.Store
	archiver mongodb.Archiver
	ledger   sheets.Ledger
	mailer   emailfn.Client
	logger   *zap.Logger
}

// NewService wires a new report service instance.
func NewService(store *memory.Store, archiver mongodb.Archiver, ledger sheets.Ledger, mailer emailfn.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, archiver: archiver, ledger: ledger, mailer: mailer, logger: logger}
}

// Record returns the record for date, or ErrNoReport. Reading never
// creates a record; creation is lazy on the first edit.
func (s *Service) Record(date string) (models.DailyRecord, error) {
	rec, ok := s.store.Get(date)
	if !ok {
		return models.DailyRecord{}, ErrNoReport
	}
	return rec, nil
}

// AddRow appends a default row to the named section, creating the day's
// record if this is its first edit. It returns the new row.
func (s *Service) AddRow(date string, section models.Section) (any, error) {
	if !section.Valid() {
		return nil, ErrUnknownSection
	}

	row := newRow(section)
	s.store.Update(date, func(rec *models.DailyRecord) {
		switch r := row.(type) {
		case models.LaborRow:
			if section == models.SectionFieldLabor {
				rec.FieldLabor = append(rec.FieldLabor, r)
			} else {
				rec.AdminLabor = append(rec.AdminLabor, r)
			}
		case models.EquipmentRow:
			rec.Equipment = append(rec.Equipment, r)
		case models.MaterialRow:
			rec.Materials = append(rec.Materials, r)
		case models.ProgressRow:
			rec.Progress = append(rec.Progress, r)
		}
	})

	s.logger.Debug("row added", zap.String("date", date), zap.String("section", string(section)))
	return row, nil
}

// UpdateField assigns one field on the row with the given id and applies
// the section's derived-field rule. A missing row id or unknown field
// name is a silent no-op: the UI may race a deletion and that is fine.
func (s *Service) UpdateField(date string, section models.Section, rowID int64, field string, value any) (models.DailyRecord, error) {
	if !section.Valid() {
		return models.DailyRecord{}, ErrUnknownSection
	}

	rec := s.store.Update(date, func(rec *models.DailyRecord) {
		switch section {
		case models.SectionFieldLabor:
			if row := findLaborRow(rec.FieldLabor, rowID); row != nil {
				applyLaborField(row, field, value)
			}
		case models.SectionAdminLabor:
			if row := findLaborRow(rec.AdminLabor, rowID); row != nil {
				applyLaborField(row, field, value)
			}
		case models.SectionEquipment:
			for i := range rec.Equipment {
				if rec.Equipment[i].ID == rowID {
					applyEquipmentField(&rec.Equipment[i], field, value)
					break
				}
			}
		case models.SectionMaterials:
			for i := range rec.Materials {
				if rec.Materials[i].ID == rowID {
					applyMaterialField(&rec.Materials[i], field, value)
					break
				}
			}
		case models.SectionProgress:
			for i := range rec.Progress {
				if rec.Progress[i].ID == rowID {
					applyProgressField(&rec.Progress[i], field, value)
					break
				}
			}
		}
	})
	return rec, nil
}

func findLaborRow(rows []models.LaborRow, rowID int64) *models.LaborRow {
	for i := range rows {
		if rows[i].ID == rowID {
			return &rows[i]
		}
	}
	return nil
}

// RemoveRow drops the row with the given id from the named section.
// A missing id is a silent no-op.
func (s *Service) RemoveRow(date string, section models.Section, rowID int64) (models.DailyRecord, error) {
	if !section.Valid() {
		return models.DailyRecord{}, ErrUnknownSection
	}

	rec := s.store.Update(date, func(rec *models.DailyRecord) {
		switch section {
		case models.SectionFieldLabor:
			rec.FieldLabor = removeLaborRow(rec.FieldLabor, rowID)
		case models.SectionAdminLabor:
			rec.AdminLabor = removeLaborRow(rec.AdminLabor, rowID)
		case models.SectionEquipment:
			kept := rec.Equipment[:0]
			for _, row := range rec.Equipment {
				if row.ID != rowID {
					kept = append(kept, row)
				}
			}
			rec.Equipment = kept
		case models.SectionMaterials:
			kept := rec.Materials[:0]
			for _, row := range rec.Materials {
				if row.ID != rowID {
					kept = append(kept, row)
				}
			}
			rec.Materials = kept
		case models.SectionProgress:
			kept := rec.Progress[:0]
			for _, row := range rec.Progress {
				if row.ID != rowID {
					kept = append(kept, row)
				}
			}
			rec.Progress = kept
		}
	})
	return rec, nil
}

func removeLaborRow(rows []models.LaborRow, rowID int64) []models.LaborRow {
	kept := rows[:0]
	for _, row := range rows {
		if row.ID != rowID {
			kept = append(kept, row)
		}
	}
	return kept
}

// UpdateMeta assigns one of the record's scalar fields (project, client,
// weather, supervisor, notes, incidents). Unknown fields are ignored.
func (s *Service) UpdateMeta(date string, field string, value any) models.DailyRecord {
	return s.store.Update(date, func(rec *models.DailyRecord) {
		applyMetaField(rec, field, value)
	})
}

// Summary folds the record for date into its cost summary.
func (s *Service) Summary(date string) (models.DailySummary, error) {
	rec, ok := s.store.Get(date)
	if !ok {
		return models.DailySummary{}, ErrNoReport
	}
	return costing.Summarize(rec), nil
}

// CarryForward clones the roster of fromDate into toDate: labor rows get
// their hours reset to the role's daily minimum (prior hours stay when the
// role has no tariff) with overtime zeroed and presence forced on,
// equipment rows get hours and fuel zeroed, materials and progress start
// empty, and general notes are cleared. The new record overwrites
// whatever was at toDate.
func (s *Service) CarryForward(fromDate, toDate string) (models.DailyRecord, error) {
	prior, ok := s.store.Get(fromDate)
	if !ok {
		return models.DailyRecord{}, ErrNoPriorReport
	}

	next := prior.Clone()
	next.Date = toDate
	next.GeneralNotes = ""
	next.Materials = []models.MaterialRow{}
	next.Progress = []models.ProgressRow{}

	for i := range next.FieldLabor {
		resetLaborRow(&next.FieldLabor[i])
	}
	for i := range next.AdminLabor {
		resetLaborRow(&next.AdminLabor[i])
	}
	for i := range next.Equipment {
		next.Equipment[i].HoursWorked = 0
		next.Equipment[i].FuelUsed = 0
	}

	s.store.Put(toDate, next)
	s.logger.Info("roster carried forward",
		zap.String("from", fromDate),
		zap.String("to", toDate),
		zap.Int("field_labor", len(next.FieldLabor)),
		zap.Int("equipment", len(next.Equipment)))

	return next, nil
}

func resetLaborRow(row *models.LaborRow) {
	if rate, ok := rates.LookupLaborRate(row.Role); ok {
		row.NormalHours = rate.MinimumDailyHours
	}
	row.OvertimeHours = 0
	row.Present = true
}

// ExportSnapshot returns the versioned full-store snapshot. Pure read.
func (s *Service) ExportSnapshot() models.Snapshot {
	return models.Snapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		Reports:       s.store.Snapshot(),
	}
}

// BuildDocument assembles the shareable report document for date: the
// record, its cost summary, and a generation timestamp.
func (s *Service) BuildDocument(date string) (models.ReportDocument, error) {
	rec, ok := s.store.Get(date)
	if !ok {
		return models.ReportDocument{}, ErrNoReport
	}
	return models.ReportDocument{
		Record:      rec,
		Summary:     costing.Summarize(rec),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Submit hands the day's record and summary to the configured export
// collaborators: the MongoDB archive and the spreadsheet cost ledger.
// Collaborator failures are surfaced to the caller and never touch the
// store.
func (s *Service) Submit(ctx context.Context, date string) (models.DailySummary, error) {
	rec, ok := s.store.Get(date)
	if !ok {
		return models.DailySummary{}, ErrNoReport
	}
	summary := costing.Summarize(rec)

	if s.archiver != nil {
		archived := models.ArchivedReport{
			Date:      date,
			Record:    rec,
			Summary:   summary,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.archiver.ArchiveReport(ctx, archived); err != nil {
			return summary, fmt.Errorf("archive report: %w", err)
		}
	}

	if s.ledger != nil {
		if err := s.ledger.AppendSummary(ctx, date, summary); err != nil {
			return summary, fmt.Errorf("append ledger summary: %w", err)
		}
	}

	s.logger.Info("report submitted", zap.String("date", date), zap.Float64("daily_total", summary.DailyTotal))
	return summary, nil
}

// EmailReport ships the day's record to the report-email function and
// returns the prepared email.
func (s *Service) EmailReport(ctx context.Context, date, recipient string) (*models.EmailData, error) {
	if s.mailer == nil {
		return nil, ErrEmailNotConfigured
	}

	rec, ok := s.store.Get(date)
	if !ok {
		return nil, ErrNoReport
	}

	req := models.EmailRequest{
		RecipientEmail: recipient,
		ReportDate:     date,
		Report:         rec,
	}

	data, err := s.mailer.SendReportEmail(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("email report for %s: %w", date, err)
	}

	s.logger.Info("report email prepared", zap.String("date", date), zap.String("recipient", recipient))
	return data, nil
}

// StoreCount returns the number of days with a record, for the header badge.
func (s *Service) StoreCount() int { return s.store.Count() }

// StoreDates returns every date with a record, sorted ascending.
func (s *Service) StoreDates() []string { return s.store.Dates() }
