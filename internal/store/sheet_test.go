package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/Fersca/YieldMaster/internal/models"
)

type fakeRows struct {
	ranges     map[string][][]string
	readErr    error
	writes     map[string][][]string
	foundID    string
	createdID  string
	created    []string
	ensured    []string
	findCalls  int
	createCall int
}

func (f *fakeRows) ReadRange(ctx context.Context, token, spreadsheetID, rangeExpr string) ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.ranges[rangeExpr], nil
}

func (f *fakeRows) WriteRange(ctx context.Context, token, spreadsheetID, rangeExpr string, values [][]string) error {
	if f.writes == nil {
		f.writes = map[string][][]string{}
	}
	f.writes[rangeExpr] = values
	return nil
}

func (f *fakeRows) FindByName(ctx context.Context, token, name string) (string, error) {
	f.findCalls++
	return f.foundID, nil
}

func (f *fakeRows) CreateSpreadsheet(ctx context.Context, token, name string, sheetTitles []string) (string, error) {
	f.createCall++
	f.created = sheetTitles
	return f.createdID, nil
}

func (f *fakeRows) EnsureSheets(ctx context.Context, token, spreadsheetID string, sheetTitles []string) error {
	f.ensured = sheetTitles
	return nil
}

func TestGetOrCreateFindsBeforeCreating(t *testing.T) {
	rows := &fakeRows{foundID: "sid-existing"}
	s := NewSheetStore(rows, "BankYield_Data")

	sid, err := s.GetOrCreate(context.Background(), "tok")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if sid != "sid-existing" {
		t.Fatalf("sid = %q", sid)
	}
	if rows.createCall != 0 {
		t.Fatal("existing spreadsheet must not be recreated")
	}
	if !reflect.DeepEqual(rows.ensured, []string{"Bancos", "Saldos"}) {
		t.Fatalf("sheets not ensured: %v", rows.ensured)
	}
}

func TestGetOrCreateCreatesOnFirstRun(t *testing.T) {
	rows := &fakeRows{createdID: "sid-new"}
	s := NewSheetStore(rows, "BankYield_Data")

	sid, err := s.GetOrCreate(context.Background(), "tok")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if sid != "sid-new" || rows.createCall != 1 {
		t.Fatalf("sid = %q, creates = %d", sid, rows.createCall)
	}
	if !reflect.DeepEqual(rows.created, []string{"Bancos", "Saldos"}) {
		t.Fatalf("created sheets: %v", rows.created)
	}
}

func TestFetchBanksDecodesRows(t *testing.T) {
	rows := &fakeRows{ranges: map[string][][]string{
		"Bancos!A:F": {
			{"ID", "Name", "Rate Pesos", "Rate USD", "Source", "Last Updated"},
			{"b1", "Banco Nación", "35.5", "0.5", "public", "5/3/2024, 14:30"},
			{"", "ghost row"},
			{"b2", "Santander", "not-a-number"},
		},
	}}
	s := NewSheetStore(rows, "BankYield_Data")

	banks, err := s.FetchBanks(context.Background(), "tok", "sid")
	if err != nil {
		t.Fatalf("FetchBanks returned error: %v", err)
	}

	want := []models.Bank{
		{ID: "b1", Name: "Banco Nación", RatePesos: 35.5, RateUsd: 0.5, Source: models.SourcePublic, LastUpdated: "5/3/2024, 14:30"},
		{ID: "b2", Name: "Santander", RatePesos: 0, RateUsd: 0, Source: models.SourceLocal},
	}
	if !reflect.DeepEqual(banks, want) {
		t.Fatalf("banks = %#v, want %#v", banks, want)
	}
}

func TestFetchBanksHeaderOnlyMeansNoData(t *testing.T) {
	rows := &fakeRows{ranges: map[string][][]string{
		"Bancos!A:F": {{"ID", "Name"}},
	}}
	s := NewSheetStore(rows, "BankYield_Data")

	banks, err := s.FetchBanks(context.Background(), "tok", "sid")
	if err != nil {
		t.Fatalf("FetchBanks returned error: %v", err)
	}
	if banks != nil {
		t.Fatalf("expected nil, got %+v", banks)
	}

	// a missing sheet reads as an empty range
	s = NewSheetStore(&fakeRows{}, "BankYield_Data")
	banks, err = s.FetchBanks(context.Background(), "tok", "sid")
	if err != nil || banks != nil {
		t.Fatalf("missing sheet must be no data: %v, %v", banks, err)
	}
}

func TestSaveBanksWritesHeaderAndRows(t *testing.T) {
	rows := &fakeRows{}
	s := NewSheetStore(rows, "BankYield_Data")

	err := s.SaveBanks(context.Background(), "tok", "sid", []models.Bank{
		{ID: "b1", Name: "Galicia", RatePesos: 33, RateUsd: 1},
	})
	if err != nil {
		t.Fatalf("SaveBanks returned error: %v", err)
	}

	values, ok := rows.writes["Bancos!A1:F2"]
	if !ok {
		t.Fatalf("unexpected write ranges: %v", rows.writes)
	}
	want := [][]string{
		{"ID", "Name", "Rate Pesos", "Rate USD", "Source", "Last Updated"},
		{"b1", "Galicia", "33", "1", "local", ""},
	}
	if !reflect.DeepEqual(values, want) {
		t.Fatalf("values = %#v, want %#v", values, want)
	}
}

func TestBanksRoundTrip(t *testing.T) {
	rows := &fakeRows{}
	s := NewSheetStore(rows, "BankYield_Data")

	banks := []models.Bank{
		{ID: "b1", Name: "Banco Nación", RatePesos: 35.5, RateUsd: 0.5, Source: models.SourcePublic, LastUpdated: "5/3/2024, 14:30"},
		{ID: "b2", Name: "Galicia", RatePesos: 33, RateUsd: 1, Source: models.SourceLocal},
	}
	if err := s.SaveBanks(context.Background(), "tok", "sid", banks); err != nil {
		t.Fatalf("SaveBanks returned error: %v", err)
	}

	written, ok := rows.writes["Bancos!A1:F3"]
	if !ok {
		t.Fatalf("unexpected write ranges: %v", rows.writes)
	}

	rows.ranges = map[string][][]string{"Bancos!A:F": written}
	got, err := s.FetchBanks(context.Background(), "tok", "sid")
	if err != nil {
		t.Fatalf("FetchBanks returned error: %v", err)
	}
	if !reflect.DeepEqual(got, banks) {
		t.Fatalf("round trip changed the banks:\n%#v\n%#v", got, banks)
	}
}

func TestFetchBalancesNilWhenAbsent(t *testing.T) {
	s := NewSheetStore(&fakeRows{}, "BankYield_Data")

	balances, err := s.FetchBalances(context.Background(), "tok", "sid")
	if err != nil || balances != nil {
		t.Fatalf("expected no data, got %v, %v", balances, err)
	}
}

func TestBalancesRoundTrip(t *testing.T) {
	rows := &fakeRows{}
	s := NewSheetStore(rows, "BankYield_Data")

	if err := s.SaveBalances(context.Background(), "tok", "sid", models.Balances{Pesos: 150000.5, Usd: 300}); err != nil {
		t.Fatalf("SaveBalances returned error: %v", err)
	}

	written := rows.writes["Saldos!A1:B2"]
	if len(written) != 2 {
		t.Fatalf("unexpected write: %#v", written)
	}

	rows.ranges = map[string][][]string{"Saldos!A2:B2": {written[1]}}
	balances, err := s.FetchBalances(context.Background(), "tok", "sid")
	if err != nil {
		t.Fatalf("FetchBalances returned error: %v", err)
	}
	if balances == nil || balances.Pesos != 150000.5 || balances.Usd != 300 {
		t.Fatalf("balances = %+v", balances)
	}
}
