// Package backend chooses where ledger-sync mirrors transactions.
package backend

import (
	"context"
	"fmt"

	"budgethero/internal/config"
	"budgethero/internal/sheets"
	gsheet "budgethero/internal/sheets/google"
)

// Type names a mirror backend.
type Type string

const (
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result is a ready writer and its optional cleanup.
type Result struct {
	Writer  sheets.TransactionWriter
	Cleanup CleanupFunc
}

// Factory creates mirror writers.
type Factory interface {
	CreateWriter(ctx context.Context, cfg Config) (*Result, error)
}

type Config struct {
	Type   Type
	Sheets gsheet.Config
}

// FromAppConfig picks the memory backend for dry runs and Google Sheets otherwise.
func FromAppConfig(appConfig *config.Config, dryRun bool) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Type: SheetsBackend,
		Sheets: gsheet.Config{
			SpreadsheetID:      appConfig.GoogleSpreadsheetID,
			SheetName:          appConfig.GoogleSheetName,
			ServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
			ServiceAccountFile: appConfig.GoogleServiceAccountFile,
		},
	}
	if dryRun {
		cfg.Type = MemoryBackend
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SheetsBackend && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
	}
	return nil
}
