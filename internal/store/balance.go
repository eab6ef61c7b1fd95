package store

import (
	"sync"

	"github.com/Fersca/YieldMaster/internal/models"
)

// balanceStore holds the two cash scalars. Writes replace the pair (or the
// pesos side alone for captures) under the mutex, so a read never observes a
// half-applied update.
type balanceStore struct {
	mu       sync.Mutex
	balances models.Balances
}

func NewBalanceStore() *balanceStore {
	return &balanceStore{}
}

func (s *balanceStore) Get() models.Balances {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances
}

// Set overwrites both scalars atomically.
func (s *balanceStore) Set(balances models.Balances) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = balances
}

// SetPesos overwrites the local-currency side only. The USD scalar is never
// touched by a capture.
func (s *balanceStore) SetPesos(amount float64) models.Balances {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances.Pesos = amount
	return s.balances
}
