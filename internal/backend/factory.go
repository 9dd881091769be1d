package backend

import (
	"context"
	"fmt"
	"log/slog"

	goption "google.golang.org/api/option"

	gsheet "budgethero/internal/sheets/google"
	"budgethero/internal/sheets/memory"
)

// DefaultFactory implements Factory. Options are passed to the Google client.
type DefaultFactory struct {
	logger        *slog.Logger
	sheetsOptions []goption.ClientOption
}

func NewFactory(logger *slog.Logger, opts ...goption.ClientOption) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger:        logger,
		sheetsOptions: opts,
	}
}

func (f *DefaultFactory) CreateWriter(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SheetsBackend:
		return f.createSheetsWriter(ctx, cfg)
	case MemoryBackend:
		f.logger.Info("Initialized memory backend, rows are not persisted")
		return &Result{Writer: memory.New()}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createSheetsWriter(ctx context.Context, cfg Config) (*Result, error) {
	cli, err := gsheet.NewClient(ctx, cfg.Sheets, f.sheetsOptions...)
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend",
		"spreadsheet_id", cfg.Sheets.SpreadsheetID,
		"sheet", cfg.Sheets.SheetName)

	return &Result{Writer: cli}, nil
}
