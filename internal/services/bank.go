package services

import (
	"context"

	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type bankRegistry interface {
	Add(bank models.Bank) models.Bank
	Edit(id string, patch models.Bank) bool
	Remove(id string) bool
	SortedView(spec *models.SortSpec) []models.Bank
	ToggleSort(key string) models.SortSpec
	CurrentSort() *models.SortSpec
	SetSelection(sel models.Selection)
	Selection() models.Selection
}

// pushScheduler enqueues background writes of the current snapshot to the
// external store. A no-op while no session is active.
type pushScheduler interface {
	SchedulePushBanks()
	SchedulePushBalances()
}

type bankService struct {
	registry bankRegistry
	sync     pushScheduler
}

func NewBankService(registry bankRegistry, sync pushScheduler) *bankService {
	return &bankService{
		registry: registry,
		sync:     sync,
	}
}

// BankListing is the registry view plus the UI state that shapes it.
type BankListing struct {
	Banks     []models.Bank    `json:"banks"`
	Selection models.Selection `json:"selection"`
	Sort      *models.SortSpec `json:"sort,omitempty"`
}

func (s *bankService) ListBanks(ctx context.Context) BankListing {
	return BankListing{
		Banks:     s.registry.SortedView(s.registry.CurrentSort()),
		Selection: s.registry.Selection(),
		Sort:      s.registry.CurrentSort(),
	}
}

func (s *bankService) AddBank(ctx context.Context, bank models.Bank) (models.Bank, error) {
	if bank.Name == "" {
		return models.Bank{}, errs.NewValidationError("bank name is required")
	}

	created := s.registry.Add(bank)
	s.sync.SchedulePushBanks()

	log := logger.FromContext(ctx)
	log.Info("bank added", "bank_id", created.ID, "name", created.Name)
	return created, nil
}

// EditBank replaces the mutable fields of the bank. An unknown id is a
// silent no-op.
func (s *bankService) EditBank(ctx context.Context, id string, patch models.Bank) error {
	if patch.Name == "" {
		return errs.NewValidationError("bank name is required")
	}

	log := logger.FromContext(ctx)
	if !s.registry.Edit(id, patch) {
		log.Debug("edit skipped, bank not found", "bank_id", id)
		return nil
	}

	s.sync.SchedulePushBanks()
	log.Info("bank edited", "bank_id", id)
	return nil
}

// RemoveBank deletes the bank. Selections pointing at it are left dangling;
// the projection resolves them to "none".
func (s *bankService) RemoveBank(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	if !s.registry.Remove(id) {
		log.Debug("remove skipped, bank not found", "bank_id", id)
		return nil
	}

	s.sync.SchedulePushBanks()
	log.Info("bank removed", "bank_id", id)
	return nil
}

func (s *bankService) ToggleSort(ctx context.Context, key string) (models.SortSpec, error) {
	switch key {
	case models.SortByName, models.SortByRatePesos, models.SortByRateUsd:
	default:
		return models.SortSpec{}, errs.NewValidationError("unsupported sort key: " + key)
	}
	return s.registry.ToggleSort(key), nil
}

func (s *bankService) SetSelection(ctx context.Context, sel models.Selection) models.Selection {
	s.registry.SetSelection(sel)
	return s.registry.Selection()
}
