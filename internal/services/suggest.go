package services

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

// mergeTimeLayout is the es-AR short display format stamped on public rows.
const mergeTimeLayout = "2/1/2006, 15:04"

type suggestRegistry interface {
	List() []models.Bank
	Replace(banks []models.Bank)
}

type suggestService struct {
	registry suggestRegistry
	sync     pushScheduler
	clockNow func() time.Time
}

func NewSuggestService(registry suggestRegistry, sync pushScheduler) *suggestService {
	return &suggestService{
		registry: registry,
		sync:     sync,
		clockNow: time.Now,
	}
}

// Apply folds a batch of suggested rates onto the registry in one snapshot
// swap. A suggestion lands on the first bank (registry order) whose folded
// name contains the suggestion's folded name; only ratePesos is overwritten
// there. Unmatched suggestions become fresh public entries.
func (s *suggestService) Apply(ctx context.Context, suggestions []models.RateSuggestion) ([]models.Bank, error) {
	banks := s.registry.List()
	now := s.clockNow().Format(mergeTimeLayout)

	matched, created := 0, 0
	for _, suggestion := range suggestions {
		needle := foldName(suggestion.Name)
		if needle == "" {
			continue
		}

		index := -1
		for i := range banks {
			if strings.Contains(foldName(banks[i].Name), needle) {
				index = i
				break
			}
		}

		if index >= 0 {
			banks[index].RatePesos = suggestion.RatePesos
			banks[index].Source = models.SourcePublic
			banks[index].LastUpdated = now
			matched++
			continue
		}

		banks = append(banks, models.Bank{
			ID:          uuid.NewString(),
			Name:        suggestion.Name,
			RatePesos:   suggestion.RatePesos,
			RateUsd:     suggestion.RateUsd,
			Source:      models.SourcePublic,
			LastUpdated: now,
		})
		created++
	}

	s.registry.Replace(banks)
	s.sync.SchedulePushBanks()

	log := logger.FromContext(ctx)
	log.Info("rate suggestions applied", "matched", matched, "created", created)
	return banks, nil
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lowercases and strips diacritics so "nacion" finds "Banco Nación".
func foldName(name string) string {
	folded, _, err := transform.String(accentFolder, strings.ToLower(name))
	if err != nil {
		return strings.ToLower(name)
	}
	return folded
}
