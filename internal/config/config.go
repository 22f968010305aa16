package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Project   ProjectConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	EmailFn   EmailFnConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// ProjectConfig carries the defaults stamped onto newly created records.
type ProjectConfig struct {
	Name   string
	Client string
}

// MongoDBConfig holds settings for the report archive. An empty URI
// disables archiving.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the cost ledger spreadsheet.
// An empty spreadsheet ID disables the ledger.
type SheetsConfig struct {
	CredentialsPath     string
	LedgerSpreadsheetID string
}

// EmailFnConfig points at the report-email function. An empty base URL
// disables the email path.
type EmailFnConfig struct {
	BaseURL string
}

// ReportingConfig holds scheduler-related settings. The scheduled daily
// email only runs when a recipient is configured.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
	Recipient    string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Project: ProjectConfig{
			Name:   getenvWithDefault("PROJECT_NAME", "Villa Marina Fase 4"),
			Client: getenvWithDefault("CLIENT_NAME", "Grupo VerdeAzul"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "sitereport"),
		},
		Sheets: SheetsConfig{
			CredentialsPath:     os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			LedgerSpreadsheetID: os.Getenv("GOOGLE_SHEET_LEDGER_ID"),
		},
		EmailFn: EmailFnConfig{
			BaseURL: os.Getenv("EMAILFN_BASE_URL"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Panama"),
			Recipient:    os.Getenv("REPORT_RECIPIENT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and
// that partially configured collaborators are rejected.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Project.Name == "" {
		return errors.New("PROJECT_NAME must not be empty")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Sheets.LedgerSpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_LEDGER_ID is set")
	}

	if c.Reporting.Recipient != "" && c.EmailFn.BaseURL == "" {
		return errors.New("EMAILFN_BASE_URL must be provided when REPORT_RECIPIENT is set")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// ArchiveEnabled reports whether the MongoDB archive collaborator is configured.
func (c *Config) ArchiveEnabled() bool { return c.MongoDB.URI != "" }

// LedgerEnabled reports whether the spreadsheet ledger collaborator is configured.
func (c *Config) LedgerEnabled() bool { return c.Sheets.LedgerSpreadsheetID != "" }

// EmailEnabled reports whether the report-email function is configured.
func (c *Config) EmailEnabled() bool { return c.EmailFn.BaseURL != "" }

// ScheduledEmailEnabled reports whether the evening report email should run.
func (c *Config) ScheduledEmailEnabled() bool {
	return c.EmailEnabled() && c.Reporting.Recipient != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
