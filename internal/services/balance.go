package services

import (
	"context"

	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type balanceStore interface {
	Get() models.Balances
	Set(balances models.Balances)
	SetPesos(amount float64) models.Balances
}

type balanceService struct {
	balances balanceStore
	sync     pushScheduler
}

func NewBalanceService(balances balanceStore, sync pushScheduler) *balanceService {
	return &balanceService{
		balances: balances,
		sync:     sync,
	}
}

func (s *balanceService) GetBalances(ctx context.Context) models.Balances {
	return s.balances.Get()
}

// SetManual overwrites both scalars from user input. Negative or garbage
// numbers were already coerced to 0 at the form boundary.
func (s *balanceService) SetManual(ctx context.Context, pesos, usd float64) models.Balances {
	s.balances.Set(models.Balances{Pesos: pesos, Usd: usd})
	s.sync.SchedulePushBalances()

	log := logger.FromContext(ctx)
	log.Info("balances updated")
	return s.balances.Get()
}

// SetFromCapture overwrites the pesos side from a confirmed OCR result. The
// USD scalar is deliberately untouched.
func (s *balanceService) SetFromCapture(ctx context.Context, amount float64) models.Balances {
	updated := s.balances.SetPesos(amount)
	s.sync.SchedulePushBalances()

	log := logger.FromContext(ctx)
	log.Info("balance set from capture", "amount", amount)
	return updated
}
