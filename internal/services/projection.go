package services

import (
	"context"
	"math"
	"time"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/helpers"
)

const projectionHorizonMonths = 12

var monthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

type projectionRegistry interface {
	Get(id string) (models.Bank, bool)
	Selection() models.Selection
}

type projectionBalances interface {
	Get() models.Balances
}

type projectionService struct {
	registry projectionRegistry
	balances projectionBalances
	clockNow func() time.Time
}

func NewProjectionService(registry projectionRegistry, balances projectionBalances) *projectionService {
	return &projectionService{
		registry: registry,
		balances: balances,
		clockNow: time.Now,
	}
}

// Project resolves the current selection and balance for the currency and
// runs the compounding series. A dangling or empty selection degrades to an
// empty series with zero gain; it is never an error.
func (s *projectionService) Project(ctx context.Context, currency models.Currency) (dto.ProjectionResult, error) {
	selection := s.registry.Selection()

	potential, ok := s.registry.Get(selection.SelectedBankID)
	if !ok {
		return dto.ProjectionResult{Points: []dto.ProjectionPoint{}}, nil
	}

	balances := s.balances.Get()
	initial := balances.Pesos
	potentialRate := potential.RatePesos
	if currency == models.CurrencyUSD {
		initial = balances.Usd
		potentialRate = potential.RateUsd
	}

	result := dto.ProjectionResult{PotentialBankName: potential.Name}

	var comparisonRate *float64
	if current, ok := s.registry.Get(selection.CurrentBankID); ok {
		rate := current.RatePesos
		if currency == models.CurrencyUSD {
			rate = current.RateUsd
		}
		comparisonRate = &rate
		result.CurrentBankName = current.Name
	}

	series := computeProjection(initial, potentialRate, comparisonRate, s.clockNow())
	result.Points = series.Points
	result.TotalGain = series.TotalGain
	result.ComparisonTotalGain = series.ComparisonTotalGain
	return result, nil
}

// computeProjection generates the 13-point compounding series. The monthly
// rate is annual/100/12 — the quoted TNA divided across months, not a
// compounded-annual conversion — and every step rounds to whole currency
// units before feeding the next month. Point 0 carries the balance rounded
// the same way, so a fractional balance enters month one already whole. All
// three quirks are observable behavior and must stay.
func computeProjection(initialBalance, potentialAnnualRate float64, comparisonAnnualRate *float64, start time.Time) dto.ProjectionResult {
	potentialMonthly := potentialAnnualRate / 100 / 12

	var comparisonMonthly float64
	if comparisonAnnualRate != nil {
		comparisonMonthly = *comparisonAnnualRate / 100 / 12
	}

	potential := math.Round(initialBalance)
	comparison := math.Round(initialBalance)

	points := make([]dto.ProjectionPoint, 0, projectionHorizonMonths+1)
	points = append(points, dto.ProjectionPoint{
		Month:      0,
		Label:      "Hoy",
		Potential:  potential,
		Comparison: comparisonValue(comparisonAnnualRate, comparison),
	})

	// Labels rotate so month 1 carries the current calendar month.
	startMonth := int(start.Month()) - 1
	for i := 1; i <= projectionHorizonMonths; i++ {
		potential = math.Round(potential * (1 + potentialMonthly))
		comparison = math.Round(comparison * (1 + comparisonMonthly))
		points = append(points, dto.ProjectionPoint{
			Month:      i,
			Label:      monthLabels[(startMonth+i-1)%12],
			Potential:  potential,
			Comparison: comparisonValue(comparisonAnnualRate, comparison),
		})
	}

	result := dto.ProjectionResult{
		Points:    points,
		TotalGain: potential - initialBalance,
	}
	if comparisonAnnualRate != nil {
		result.ComparisonTotalGain = helpers.Ptr(comparison - initialBalance)
	}
	return result
}

func comparisonValue(rate *float64, value float64) *float64 {
	if rate == nil {
		return nil
	}
	return helpers.Ptr(value)
}
