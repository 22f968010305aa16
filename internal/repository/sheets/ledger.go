package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/buildtrack/sitereport/internal/config"
	"github.com/buildtrack/sitereport/internal/domain/models"
)

// summaryRange is the sheet range the cost ledger appends to.
const summaryRange = "Resumen!A:F"

// Ledger defines the export operation supported by the spreadsheet adapter:
// one appended row of cost figures per submitted day.
type Ledger interface {
	AppendSummary(ctx context.Context, date string, summary models.DailySummary) error
}

// GoogleSheetLedger implements the Ledger interface using the official
// Google Sheets API.
type GoogleSheetLedger struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetLedger builds a Google Sheets backed ledger instance.
func NewGoogleSheetLedger(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetLedger{
		service:       service,
		spreadsheetID: cfg.LedgerSpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSummary appends the day's cost figures as a single ledger row:
// date, field labor, admin labor, equipment, materials, total.
func (l *GoogleSheetLedger) AppendSummary(ctx context.Context, date string, summary models.DailySummary) error {
	values := []interface{}{
		date,
		summary.FieldLaborCost,
		summary.AdminLaborCost,
		summary.EquipmentCost,
		summary.MaterialsCost,
		summary.DailyTotal,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := l.service.Spreadsheets.Values.Append(l.spreadsheetID, summaryRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row for %s: %w", date, err)
	}

	l.logger.Debug("summary row appended to ledger", zap.String("date", date))
	return nil
}
