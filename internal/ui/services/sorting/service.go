package sorting

import (
	"cmp"
	"slices"

	"carosearch/internal/domain"
	"carosearch/internal/logic"
)

// Service orders the vehicles of the current page. Ordering is client side;
// relevance keeps the order the API returned.
type Service struct {
	mode logic.SortMode
}

// NewService creates a new sorting service
func NewService() *Service {
	return &Service{mode: logic.SortByRelevance}
}

// GetCurrentMode returns the current sort mode
func (s *Service) GetCurrentMode() logic.SortMode {
	return s.mode
}

// SetMode sets the sort mode
func (s *Service) SetMode(mode logic.SortMode) {
	s.mode = mode
}

// NextMode cycles to the next sort mode
func (s *Service) NextMode() {
	s.mode = s.mode.Next()
}

// GetModeString returns a string representation of the current mode
func (s *Service) GetModeString() string {
	return s.mode.String()
}

// SortVehicles returns a sorted copy of vehicles
func (s *Service) SortVehicles(vehicles []domain.Vehicle) []domain.Vehicle {
	out := slices.Clone(vehicles)

	var order func(a, b domain.Vehicle) int
	switch s.mode {
	case logic.SortByPriceAsc:
		order = func(a, b domain.Vehicle) int { return cmp.Compare(a.Price, b.Price) }
	case logic.SortByPriceDesc:
		order = func(a, b domain.Vehicle) int { return cmp.Compare(b.Price, a.Price) }
	case logic.SortByYear:
		order = func(a, b domain.Vehicle) int { return b.Year - a.Year }
	case logic.SortByMileage:
		order = func(a, b domain.Vehicle) int { return cmp.Compare(a.Mileage, b.Mileage) }
	default:
		return out
	}

	slices.SortStableFunc(out, order)
	return out
}
