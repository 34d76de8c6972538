// Package sheets pulls the menu catalog and stock ledger from a Google
// spreadsheet. One row is [name, price, stock]; rows without a name are
// skipped and row order is preserved in the snapshot.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"warunggo/internal/domain"
	"warunggo/internal/text"
)

type Config struct {
	SpreadsheetID   string
	Range           string
	CredentialsPath string
}

type Service struct {
	cfg    Config
	logger *slog.Logger
}

func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.Range == "" {
		cfg.Range = "Menu!A2:C"
	}
	return &Service{cfg: cfg, logger: logger}
}

// Fetch reads the configured range and builds a fresh snapshot. Item names
// are normalized into catalog keys; price and stock parse leniently to 0.
func (s *Service) Fetch(ctx context.Context) (domain.Snapshot, error) {
	if s.cfg.SpreadsheetID == "" {
		return domain.Snapshot{}, fmt.Errorf("SHEETS_ID is required for Google Sheets sync")
	}

	creds, err := os.ReadFile(s.cfg.CredentialsPath)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("unable to load Google credentials at %s: %w", s.cfg.CredentialsPath, err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("init sheets client: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.cfg.Range).Context(ctx).Do()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read range %s: %w", s.cfg.Range, err)
	}

	snap := domain.NewSnapshot()
	for _, row := range resp.Values {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		key := text.Slug(name)
		if key == "" {
			continue
		}
		snap.Add(key, lenientInt(cell(row, 1)), lenientInt(cell(row, 2)))
	}

	s.logger.Info("sheets sync completed", "item_count", len(snap.Keys))
	return snap, nil
}

func cell(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}

// lenientInt mirrors the sheet's loose typing: anything that does not parse
// as a number counts as 0.
func lenientInt(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
