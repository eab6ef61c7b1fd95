package services

import (
	"context"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type projectionFakeRegistry struct {
	banks     map[string]models.Bank
	selection models.Selection
}

func (f *projectionFakeRegistry) Get(id string) (models.Bank, bool) {
	b, ok := f.banks[id]
	return b, ok
}

func (f *projectionFakeRegistry) Selection() models.Selection {
	return f.selection
}

type projectionFakeBalances struct {
	balances models.Balances
}

func (f *projectionFakeBalances) Get() models.Balances {
	return f.balances
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestProjectCompoundsWithMonthlyRounding(t *testing.T) {
	registry := &projectionFakeRegistry{
		banks: map[string]models.Bank{
			"b1": {ID: "b1", Name: "Banco Nación", RatePesos: 35, RateUsd: 0.5},
		},
		selection: models.Selection{SelectedBankID: "b1"},
	}
	balances := &projectionFakeBalances{balances: models.Balances{Pesos: 100000, Usd: 500}}

	svc := NewProjectionService(registry, balances)
	svc.clockNow = fixedClock(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Project(ctx, models.CurrencyARS)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	if len(got.Points) != 13 {
		t.Fatalf("expected 13 points, got %d", len(got.Points))
	}
	if got.Points[0].Label != "Hoy" || got.Points[0].Potential != 100000 {
		t.Fatalf("unexpected first point: %+v", got.Points[0])
	}
	// 100000 * (1 + 35/100/12) = 102916.66..., rounded before month two
	if got.Points[1].Potential != 102917 {
		t.Fatalf("month 1 = %v, want 102917", got.Points[1].Potential)
	}
	if got.PotentialBankName != "Banco Nación" {
		t.Fatalf("potential bank = %q", got.PotentialBankName)
	}
	if got.TotalGain != got.Points[12].Potential-100000 {
		t.Fatalf("total gain = %v, final point = %v", got.TotalGain, got.Points[12].Potential)
	}
	if got.ComparisonTotalGain != nil {
		t.Fatalf("expected no comparison gain, got %v", *got.ComparisonTotalGain)
	}
}

func TestProjectRotatesMonthLabels(t *testing.T) {
	registry := &projectionFakeRegistry{
		banks: map[string]models.Bank{
			"b1": {ID: "b1", Name: "Galicia", RatePesos: 33},
		},
		selection: models.Selection{SelectedBankID: "b1"},
	}
	balances := &projectionFakeBalances{balances: models.Balances{Pesos: 1000}}

	svc := NewProjectionService(registry, balances)
	svc.clockNow = fixedClock(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Project(ctx, models.CurrencyARS)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	wantLabels := []string{"Hoy", "Nov", "Dic", "Ene", "Feb"}
	for i, want := range wantLabels {
		if got.Points[i].Label != want {
			t.Fatalf("point %d label = %q, want %q", i, got.Points[i].Label, want)
		}
	}
	if got.Points[12].Label != "Oct" {
		t.Fatalf("last label = %q, want Oct", got.Points[12].Label)
	}
}

func TestProjectComparisonSeries(t *testing.T) {
	registry := &projectionFakeRegistry{
		banks: map[string]models.Bank{
			"b1": {ID: "b1", Name: "Santander", RatePesos: 36},
			"b2": {ID: "b2", Name: "Galicia", RatePesos: 24},
		},
		selection: models.Selection{SelectedBankID: "b1", CurrentBankID: "b2"},
	}
	balances := &projectionFakeBalances{balances: models.Balances{Pesos: 100000}}

	svc := NewProjectionService(registry, balances)
	svc.clockNow = fixedClock(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Project(ctx, models.CurrencyARS)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	if got.CurrentBankName != "Galicia" {
		t.Fatalf("current bank = %q", got.CurrentBankName)
	}
	// 36% TNA is 3% monthly, 24% is 2% monthly
	if got.Points[1].Potential != 103000 {
		t.Fatalf("potential month 1 = %v, want 103000", got.Points[1].Potential)
	}
	if got.Points[1].Comparison == nil || *got.Points[1].Comparison != 102000 {
		t.Fatalf("comparison month 1 = %v, want 102000", got.Points[1].Comparison)
	}
	if got.ComparisonTotalGain == nil {
		t.Fatal("expected comparison total gain")
	}
	if *got.ComparisonTotalGain >= got.TotalGain {
		t.Fatalf("comparison gain %v should trail potential gain %v", *got.ComparisonTotalGain, got.TotalGain)
	}
}

func TestProjectUSDCurrencyUsesUsdSides(t *testing.T) {
	registry := &projectionFakeRegistry{
		banks: map[string]models.Bank{
			"b1": {ID: "b1", Name: "Santander", RatePesos: 36, RateUsd: 12},
		},
		selection: models.Selection{SelectedBankID: "b1"},
	}
	balances := &projectionFakeBalances{balances: models.Balances{Pesos: 100000, Usd: 1000}}

	svc := NewProjectionService(registry, balances)
	svc.clockNow = fixedClock(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Project(ctx, models.CurrencyUSD)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	if got.Points[0].Potential != 1000 {
		t.Fatalf("first point = %v, want 1000", got.Points[0].Potential)
	}
	// 12% TNA is 1% monthly
	if got.Points[1].Potential != 1010 {
		t.Fatalf("month 1 = %v, want 1010", got.Points[1].Potential)
	}
}

func TestProjectZeroBalanceStaysFlat(t *testing.T) {
	registry := &projectionFakeRegistry{
		banks: map[string]models.Bank{
			"b1": {ID: "b1", Name: "Galicia", RatePesos: 40},
		},
		selection: models.Selection{SelectedBankID: "b1"},
	}
	balances := &projectionFakeBalances{}

	svc := NewProjectionService(registry, balances)
	svc.clockNow = fixedClock(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Project(ctx, models.CurrencyARS)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	for i, p := range got.Points {
		if p.Potential != 0 {
			t.Fatalf("point %d = %v, want 0", i, p.Potential)
		}
	}
	if got.TotalGain != 0 {
		t.Fatalf("total gain = %v, want 0", got.TotalGain)
	}
}

func TestProjectIsDeterministicAndMonotonic(t *testing.T) {
	registry := &projectionFakeRegistry{
		banks: map[string]models.Bank{
			"b1": {ID: "b1", Name: "Santander", RatePesos: 41},
		},
		selection: models.Selection{SelectedBankID: "b1"},
	}
	balances := &projectionFakeBalances{balances: models.Balances{Pesos: 12345.67}}

	svc := NewProjectionService(registry, balances)
	svc.clockNow = fixedClock(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	first, err := svc.Project(ctx, models.CurrencyARS)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	second, err := svc.Project(ctx, models.CurrencyARS)
	if err != nil {
		t.Fatalf("second Project returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs diverged:\n%+v\n%+v", first, second)
	}
	for i := 1; i < len(first.Points); i++ {
		if first.Points[i].Potential < first.Points[i-1].Potential {
			t.Fatalf("series dips at point %d: %v < %v", i, first.Points[i].Potential, first.Points[i-1].Potential)
		}
	}
}

func TestProjectDanglingSelectionReturnsEmptySeries(t *testing.T) {
	registry := &projectionFakeRegistry{
		banks:     map[string]models.Bank{},
		selection: models.Selection{SelectedBankID: "gone"},
	}
	balances := &projectionFakeBalances{balances: models.Balances{Pesos: 100000}}

	svc := NewProjectionService(registry, balances)

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Project(ctx, models.CurrencyARS)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	if len(got.Points) != 0 {
		t.Fatalf("expected empty series, got %d points", len(got.Points))
	}
	if got.TotalGain != 0 || got.PotentialBankName != "" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func testLogger() *slog.Logger {
	return slog.New(logger.NewTestHandler(slog.LevelInfo))
}
