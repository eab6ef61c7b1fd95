package store

import (
	"context"
	"strconv"

	"github.com/Fersca/YieldMaster/internal/models"
)

// Sheet and range layout of the external spreadsheet. One header row per
// sheet; bank rows carry [id, name, ratePesos, rateUsd, source, lastUpdated],
// the balances sheet exactly one data row [pesos, usd].
const (
	banksSheet    = "Bancos"
	balancesSheet = "Saldos"

	banksRange        = "Bancos!A:F"
	balancesReadRange = "Saldos!A2:B2"
	balancesFullRange = "Saldos!A1:B2"
)

// rowStore is the minimal external row-store contract: ranges in, 2-D string
// arrays out. The Sheets/Drive adapter implements it.
type rowStore interface {
	ReadRange(ctx context.Context, token, spreadsheetID, rangeExpr string) ([][]string, error)
	WriteRange(ctx context.Context, token, spreadsheetID, rangeExpr string, values [][]string) error
	FindByName(ctx context.Context, token, name string) (string, error)
	CreateSpreadsheet(ctx context.Context, token, name string, sheetTitles []string) (string, error)
	EnsureSheets(ctx context.Context, token, spreadsheetID string, sheetTitles []string) error
}

type sheetStore struct {
	rows            rowStore
	spreadsheetName string
}

func NewSheetStore(rows rowStore, spreadsheetName string) *sheetStore {
	return &sheetStore{rows: rows, spreadsheetName: spreadsheetName}
}

// GetOrCreate binds to the uniquely-named spreadsheet, creating it with both
// named sheets on first run. Find-before-create keeps a second bootstrap from
// duplicating the resource; the remaining race window is accepted for a
// single-user client.
func (s *sheetStore) GetOrCreate(ctx context.Context, token string) (string, error) {
	titles := []string{banksSheet, balancesSheet}

	spreadsheetID, err := s.rows.FindByName(ctx, token, s.spreadsheetName)
	if err != nil {
		return "", err
	}
	if spreadsheetID == "" {
		return s.rows.CreateSpreadsheet(ctx, token, s.spreadsheetName, titles)
	}

	// An existing spreadsheet may predate one of the sheets.
	if err := s.rows.EnsureSheets(ctx, token, spreadsheetID, titles); err != nil {
		return "", err
	}
	return spreadsheetID, nil
}

// FetchBanks reads the bank rows. A missing sheet or a header-only sheet is
// "no data", not an error.
func (s *sheetStore) FetchBanks(ctx context.Context, token, spreadsheetID string) ([]models.Bank, error) {
	rows, err := s.rows.ReadRange(ctx, token, spreadsheetID, banksRange)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	banks := make([]models.Bank, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if cell(row, 0) == "" {
			continue
		}
		source := cell(row, 4)
		if source == "" {
			source = models.SourceLocal
		}
		banks = append(banks, models.Bank{
			ID:          cell(row, 0),
			Name:        cell(row, 1),
			RatePesos:   parseRate(cell(row, 2)),
			RateUsd:     parseRate(cell(row, 3)),
			Source:      source,
			LastUpdated: cell(row, 5),
		})
	}
	return banks, nil
}

// SaveBanks overwrites the whole banks sheet with the snapshot. Last full
// push wins.
func (s *sheetStore) SaveBanks(ctx context.Context, token, spreadsheetID string, banks []models.Bank) error {
	values := make([][]string, 0, len(banks)+1)
	values = append(values, []string{"ID", "Name", "Rate Pesos", "Rate USD", "Source", "Last Updated"})
	for _, b := range banks {
		source := b.Source
		if source == "" {
			source = models.SourceLocal
		}
		values = append(values, []string{
			b.ID,
			b.Name,
			formatRate(b.RatePesos),
			formatRate(b.RateUsd),
			source,
			b.LastUpdated,
		})
	}

	rangeExpr := "Bancos!A1:F" + strconv.Itoa(len(values))
	return s.rows.WriteRange(ctx, token, spreadsheetID, rangeExpr, values)
}

// FetchBalances reads the single balance row; nil means "no data, keep the
// in-memory defaults".
func (s *sheetStore) FetchBalances(ctx context.Context, token, spreadsheetID string) (*models.Balances, error) {
	rows, err := s.rows.ReadRange(ctx, token, spreadsheetID, balancesReadRange)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &models.Balances{
		Pesos: parseRate(cell(rows[0], 0)),
		Usd:   parseRate(cell(rows[0], 1)),
	}, nil
}

func (s *sheetStore) SaveBalances(ctx context.Context, token, spreadsheetID string, balances models.Balances) error {
	values := [][]string{
		{"Pesos", "USD"},
		{formatRate(balances.Pesos), formatRate(balances.Usd)},
	}
	return s.rows.WriteRange(ctx, token, spreadsheetID, balancesFullRange, values)
}

// ---- Helpers ----

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseRate falls back to 0 on anything unparsable, mirroring the form
// coercion rules.
func parseRate(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
