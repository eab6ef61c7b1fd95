package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Fersca/YieldMaster/internal/models"
)

// registryStore is the live working copy of the bank registry. Its durable
// home is the user's spreadsheet; everything here is guarded by one mutex so
// handler goroutines never interleave mutations.
type registryStore struct {
	mu        sync.Mutex
	banks     []models.Bank
	selection models.Selection
	sortSpec  *models.SortSpec
}

// NewRegistryStore seeds the registry with the default offline set so the
// projection works before the first sign-in. The first bank starts selected.
func NewRegistryStore() *registryStore {
	banks := []models.Bank{
		{ID: uuid.NewString(), Name: "Banco Nación", RatePesos: 35, RateUsd: 0.5, Source: models.SourceLocal},
		{ID: uuid.NewString(), Name: "Santander", RatePesos: 32, RateUsd: 1.5, Source: models.SourceLocal},
		{ID: uuid.NewString(), Name: "Galicia", RatePesos: 33, RateUsd: 1.0, Source: models.SourceLocal},
	}
	return &registryStore{
		banks:     banks,
		selection: models.Selection{SelectedBankID: banks[0].ID},
	}
}

// Add inserts a bank under a fresh id. Provenance is forced to local; a
// manual write never carries a public timestamp.
func (s *registryStore) Add(bank models.Bank) models.Bank {
	s.mu.Lock()
	defer s.mu.Unlock()

	bank.ID = uuid.NewString()
	bank.Source = models.SourceLocal
	bank.LastUpdated = ""
	s.banks = append(s.banks, bank)
	return bank
}

// Edit replaces the mutable fields of the matching bank. Unknown ids are a
// silent no-op; the returned bool only feeds logging.
func (s *registryStore) Edit(id string, patch models.Bank) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.banks {
		if s.banks[i].ID == id {
			s.banks[i].Name = patch.Name
			s.banks[i].RatePesos = patch.RatePesos
			s.banks[i].RateUsd = patch.RateUsd
			s.banks[i].Source = models.SourceLocal
			s.banks[i].LastUpdated = ""
			return true
		}
	}
	return false
}

// Remove drops the matching bank. Selections referencing the removed id are
// left dangling on purpose; lookups resolve them to "none".
func (s *registryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.banks {
		if s.banks[i].ID == id {
			s.banks = append(s.banks[:i], s.banks[i+1:]...)
			return true
		}
	}
	return false
}

func (s *registryStore) Get(id string) (models.Bank, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.banks {
		if b.ID == id {
			return b, true
		}
	}
	return models.Bank{}, false
}

// List returns a copy in insertion order.
func (s *registryStore) List() []models.Bank {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bank(nil), s.banks...)
}

// Replace swaps the whole snapshot at once (sync pull, suggestion merge).
func (s *registryStore) Replace(banks []models.Bank) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banks = append([]models.Bank(nil), banks...)
}

// SortedView returns a stable-sorted copy per spec. A nil spec keeps
// insertion order. The underlying slice is never reordered.
func (s *registryStore) SortedView(spec *models.SortSpec) []models.Bank {
	view := s.List()
	if spec == nil {
		return view
	}

	less := func(a, b models.Bank) bool {
		switch spec.Key {
		case models.SortByRatePesos:
			return a.RatePesos < b.RatePesos
		case models.SortByRateUsd:
			return a.RateUsd < b.RateUsd
		default:
			return a.Name < b.Name
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		if spec.Direction == "asc" {
			return less(view[i], view[j])
		}
		return less(view[j], view[i])
	})
	return view
}

// ToggleSort flips direction when the key repeats, otherwise starts a new
// key descending. Returns the resulting spec.
func (s *registryStore) ToggleSort(key string) models.SortSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sortSpec != nil && s.sortSpec.Key == key {
		if s.sortSpec.Direction == "asc" {
			s.sortSpec.Direction = "desc"
		} else {
			s.sortSpec.Direction = "asc"
		}
	} else {
		s.sortSpec = &models.SortSpec{Key: key, Direction: "desc"}
	}
	return *s.sortSpec
}

func (s *registryStore) CurrentSort() *models.SortSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sortSpec == nil {
		return nil
	}
	spec := *s.sortSpec
	return &spec
}

func (s *registryStore) SetSelection(sel models.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

func (s *registryStore) Selection() models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}
