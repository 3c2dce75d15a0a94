package logic

import (
	"carosearch/internal/domain"
	"carosearch/internal/filters"
)

// FilterStore holds the search criteria of one session. Mutations notify
// subscribers synchronously with the full new state.
type FilterStore interface {
	GetFilters() filters.State
	SetFilter(field filters.Field, value filters.Value) error
	ClearFilter(field filters.Field) error
	ClearAllFilters()
	ApplyPatch(patch filters.Patch) error
	GetActiveFiltersCount() int
	Subscribe(fn func(filters.State)) func()
}

// ListingStore caches search results by request key
type ListingStore interface {
	GetListing(key string) (domain.Listing, bool)
	PutListing(key string, listing domain.Listing)
	Purge()
}

// Sort modes
type SortMode int

const (
	SortByRelevance SortMode = iota
	SortByPriceAsc
	SortByPriceDesc
	SortByYear
	SortByMileage
)

func (m SortMode) String() string {
	switch m {
	case SortByPriceAsc:
		return "price ↑"
	case SortByPriceDesc:
		return "price ↓"
	case SortByYear:
		return "newest"
	case SortByMileage:
		return "mileage"
	default:
		return "relevance"
	}
}

// Next cycles through the sort modes
func (m SortMode) Next() SortMode {
	return (m + 1) % (SortByMileage + 1)
}
