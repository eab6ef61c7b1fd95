package services

import (
	"context"
	"testing"
	"time"

	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type suggestFakeRegistry struct {
	banks    []models.Bank
	replaced []models.Bank
}

func (f *suggestFakeRegistry) List() []models.Bank {
	out := make([]models.Bank, len(f.banks))
	copy(out, f.banks)
	return out
}

func (f *suggestFakeRegistry) Replace(banks []models.Bank) {
	f.replaced = banks
}

type fakeScheduler struct {
	bankPushes    int
	balancePushes int
}

func (f *fakeScheduler) SchedulePushBanks()    { f.bankPushes++ }
func (f *fakeScheduler) SchedulePushBalances() { f.balancePushes++ }

func TestApplyMatchesBySubstringAndUpdatesPesosOnly(t *testing.T) {
	registry := &suggestFakeRegistry{banks: []models.Bank{
		{ID: "b1", Name: "Banco Nación", RatePesos: 35, RateUsd: 0.5, Source: models.SourceLocal},
		{ID: "b2", Name: "Santander", RatePesos: 32, RateUsd: 1.5, Source: models.SourceLocal},
	}}
	scheduler := &fakeScheduler{}

	svc := NewSuggestService(registry, scheduler)
	svc.clockNow = fixedClock(time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Apply(ctx, []models.RateSuggestion{
		{Name: "nacion", RatePesos: 41, RateUsd: 0.9},
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	// diacritic-insensitive: "nacion" lands on "Banco Nación"
	if len(got) != 2 {
		t.Fatalf("expected 2 banks, got %d", len(got))
	}
	if got[0].RatePesos != 41 {
		t.Fatalf("ratePesos = %v, want 41", got[0].RatePesos)
	}
	if got[0].RateUsd != 0.5 {
		t.Fatalf("rateUsd = %v, want untouched 0.5", got[0].RateUsd)
	}
	if got[0].Source != models.SourcePublic {
		t.Fatalf("source = %q, want public", got[0].Source)
	}
	if got[0].LastUpdated != "5/3/2024, 14:30" {
		t.Fatalf("lastUpdated = %q", got[0].LastUpdated)
	}
	if got[1].RatePesos != 32 {
		t.Fatalf("second bank should be untouched: %+v", got[1])
	}
	if registry.replaced == nil {
		t.Fatal("expected registry snapshot swap")
	}
	if scheduler.bankPushes != 1 {
		t.Fatalf("expected 1 bank push, got %d", scheduler.bankPushes)
	}
}

func TestApplyUpdatesMatchedBank(t *testing.T) {
	registry := &suggestFakeRegistry{banks: []models.Bank{
		{ID: "b1", Name: "Banco Santander Argentina", RatePesos: 32, RateUsd: 1.5, Source: models.SourceLocal},
	}}
	scheduler := &fakeScheduler{}

	svc := NewSuggestService(registry, scheduler)
	svc.clockNow = fixedClock(time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Apply(ctx, []models.RateSuggestion{
		{Name: "Santander", RatePesos: 38, RateUsd: 2.0},
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 bank, got %d", len(got))
	}
	updated := got[0]
	if updated.RatePesos != 38 {
		t.Fatalf("ratePesos = %v, want 38", updated.RatePesos)
	}
	if updated.RateUsd != 1.5 {
		t.Fatalf("rateUsd = %v, want untouched 1.5", updated.RateUsd)
	}
	if updated.Source != models.SourcePublic {
		t.Fatalf("source = %q, want public", updated.Source)
	}
	if updated.LastUpdated != "5/3/2024, 14:30" {
		t.Fatalf("lastUpdated = %q", updated.LastUpdated)
	}
	if updated.ID != "b1" || updated.Name != "Banco Santander Argentina" {
		t.Fatalf("identity changed: %+v", updated)
	}
}

func TestApplyFirstMatchWinsInRegistryOrder(t *testing.T) {
	registry := &suggestFakeRegistry{banks: []models.Bank{
		{ID: "b1", Name: "Galicia Más", RatePesos: 30},
		{ID: "b2", Name: "Banco Galicia", RatePesos: 33},
	}}
	scheduler := &fakeScheduler{}

	svc := NewSuggestService(registry, scheduler)

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Apply(ctx, []models.RateSuggestion{
		{Name: "galicia", RatePesos: 44},
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if got[0].RatePesos != 44 {
		t.Fatalf("first bank ratePesos = %v, want 44", got[0].RatePesos)
	}
	if got[1].RatePesos != 33 {
		t.Fatalf("second bank ratePesos = %v, want untouched 33", got[1].RatePesos)
	}
}

func TestApplyUnmatchedSuggestionCreatesPublicBank(t *testing.T) {
	registry := &suggestFakeRegistry{banks: []models.Bank{
		{ID: "b1", Name: "Banco Nación", RatePesos: 35},
	}}
	scheduler := &fakeScheduler{}

	svc := NewSuggestService(registry, scheduler)
	svc.clockNow = fixedClock(time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC))

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Apply(ctx, []models.RateSuggestion{
		{Name: "BBVA", RatePesos: 37, RateUsd: 1.2},
		{Name: ""},
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 banks (empty name skipped), got %d", len(got))
	}
	created := got[1]
	if created.ID == "" {
		t.Fatal("created bank has no id")
	}
	if created.Name != "BBVA" || created.RatePesos != 37 || created.RateUsd != 1.2 {
		t.Fatalf("unexpected created bank: %+v", created)
	}
	if created.Source != models.SourcePublic {
		t.Fatalf("created source = %q, want public", created.Source)
	}
	if created.LastUpdated != "5/3/2024, 14:30" {
		t.Fatalf("created lastUpdated = %q", created.LastUpdated)
	}
}
