package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/zbmott/snafoo-challenge/internal/domain"
)

// StaticSource is an in-memory domain.SnackSource for development and tests.
// Suggested snacks show up in subsequent List calls, matching the contract
// of the real API.
type StaticSource struct {
	mu     sync.Mutex
	snacks []domain.Snack
	nextID int64
}

func NewStaticSource() *StaticSource {
	return &StaticSource{
		snacks: []domain.Snack{
			{ID: 1, Name: "Coffee", Optional: false, PurchaseLocations: "Costco", PurchaseCount: 12},
			{ID: 2, Name: "Granola Bars", Optional: false, PurchaseLocations: "Target", PurchaseCount: 8},
			{ID: 3, Name: "Gummy Bears", Optional: true, PurchaseLocations: "Walgreens", PurchaseCount: 3},
			{ID: 4, Name: "Seaweed Snacks", Optional: true, PurchaseLocations: "H Mart", PurchaseCount: 1},
		},
		nextID: 5,
	}
}

func (s *StaticSource) List(_ context.Context) ([]domain.Snack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Snack, len(s.snacks))
	copy(out, s.snacks)
	return out, nil
}

func (s *StaticSource) Suggest(_ context.Context, name, location string, _, _ *float64) (*domain.Snack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snack := range s.snacks {
		if strings.EqualFold(snack.Name, name) {
			return nil, &SourceError{Kind: ErrConflict, Message: "Error: That snack already exists!"}
		}
	}

	snack := domain.Snack{
		ID:                s.nextID,
		Name:              name,
		Optional:          true,
		PurchaseLocations: location,
	}
	s.nextID++
	s.snacks = append(s.snacks, snack)

	return &snack, nil
}
