package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carosearch/internal/domain"
	"carosearch/internal/logic"
)

func ids(vs []domain.Vehicle) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestSortVehicles(t *testing.T) {
	vehicles := []domain.Vehicle{
		{ID: 1, Price: 9000, Year: 2012, Mileage: 80000},
		{ID: 2, Price: 4000, Year: 2018, Mileage: 30000},
		{ID: 3, Price: 9000, Year: 2015, Mileage: 120000},
	}
	s := NewService()

	tests := []struct {
		mode logic.SortMode
		want []int
	}{
		{logic.SortByRelevance, []int{1, 2, 3}},
		{logic.SortByPriceAsc, []int{2, 1, 3}},
		{logic.SortByPriceDesc, []int{1, 3, 2}},
		{logic.SortByYear, []int{2, 3, 1}},
		{logic.SortByMileage, []int{2, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s.SetMode(tt.mode)
			assert.Equal(t, tt.want, ids(s.SortVehicles(vehicles)))
		})
	}
	assert.Equal(t, []int{1, 2, 3}, ids(vehicles), "input must not be reordered")
}

func TestNextModeWraps(t *testing.T) {
	s := NewService()
	for range 5 {
		s.NextMode()
	}
	assert.Equal(t, logic.SortByRelevance, s.GetCurrentMode())
	assert.Equal(t, "relevance", s.GetModeString())
}
