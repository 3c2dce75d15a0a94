package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carosearch/internal/domain"
	"carosearch/internal/filters"
)

func TestFilterStoreActiveCount(t *testing.T) {
	store := NewMemoryFilterStore()
	require.NoError(t, store.SetFilter(filters.FieldYearRange, filters.IntRange{Min: 2010, Max: 2015}))
	require.NoError(t, store.SetFilter(filters.FieldMake, filters.Text("Toyota")))

	assert.Equal(t, 2, store.GetActiveFiltersCount())
}

func TestClearAllFiltersIsIdempotent(t *testing.T) {
	store := NewMemoryFilterStore()
	require.NoError(t, store.SetFilter(filters.FieldMake, filters.Text("Mazda")))
	require.NoError(t, store.SetFilter(filters.FieldDoors, filters.IntSet{4}))

	var notified []filters.State
	store.Subscribe(func(s filters.State) { notified = append(notified, s) })

	store.ClearAllFilters()
	once := store.GetFilters()
	store.ClearAllFilters()

	assert.Equal(t, once, store.GetFilters())
	assert.Equal(t, filters.Default(), store.GetFilters())
	assert.Equal(t, 0, store.GetActiveFiltersCount())
	assert.Len(t, notified, 2, "one notification per clear")
}

func TestSubscribersSeeFullSnapshotAfterMutation(t *testing.T) {
	store := NewMemoryFilterStore()
	var seen []filters.State
	store.Subscribe(func(s filters.State) {
		seen = append(seen, s)
		// the store is readable from inside a notification
		assert.Equal(t, s, store.GetFilters())
	})

	require.NoError(t, store.SetFilter(filters.FieldPriceRange, filters.FloatRange{Min: 1000, Max: 5000}))
	require.NoError(t, store.SetFilter(filters.FieldMake, filters.Text("BMW")))

	require.Len(t, seen, 2)
	assert.Equal(t, filters.FloatRange{Min: 1000, Max: 5000}, seen[0].PriceRange)
	assert.Equal(t, "", seen[0].Make)
	assert.Equal(t, "BMW", seen[1].Make)
}

func TestSetFilterInvalidDoesNotNotify(t *testing.T) {
	store := NewMemoryFilterStore()
	calls := 0
	store.Subscribe(func(filters.State) { calls++ })

	err := store.SetFilter(filters.FieldMake, filters.IntSet{1})
	assert.True(t, errors.Is(err, filters.ErrInvalidField))
	err = store.ClearFilter(filters.Field(-1))
	assert.True(t, errors.Is(err, filters.ErrInvalidField))

	assert.Equal(t, 0, calls)
}

func TestClearFilterRestoresDefault(t *testing.T) {
	store := NewMemoryFilterStore()
	require.NoError(t, store.SetFilter(filters.FieldEngineSize, filters.FloatRange{Min: 1, Max: 2}))
	require.NoError(t, store.SetFilter(filters.FieldColor, filters.Set[string]{"red"}))

	require.NoError(t, store.ClearFilter(filters.FieldEngineSize))
	assert.Equal(t, filters.DefaultEngineSize, store.GetFilters().EngineSize)
	assert.Equal(t, 1, store.GetActiveFiltersCount())
}

func TestUnsubscribe(t *testing.T) {
	store := NewMemoryFilterStore()
	calls := 0
	unsubscribe := store.Subscribe(func(filters.State) { calls++ })

	store.ClearAllFilters()
	unsubscribe()
	store.ClearAllFilters()

	assert.Equal(t, 1, calls)
}

func TestApplyPatchNotifiesOnce(t *testing.T) {
	store := NewMemoryFilterStore()
	calls := 0
	store.Subscribe(func(filters.State) { calls++ })

	require.NoError(t, store.ApplyPatch(filters.Patch{
		filters.FieldMake:     filters.Text("Suzuki"),
		filters.FieldFuelType: filters.Set[domain.FuelType]{domain.FuelPetrol},
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, store.GetActiveFiltersCount())

	assert.Error(t, store.ApplyPatch(filters.Patch{filters.FieldModel: filters.IntRange{}}))
	assert.Equal(t, 1, calls)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	store := NewMemoryFilterStore()
	require.NoError(t, store.SetFilter(filters.FieldColor, filters.Set[string]{"red"}))

	snap := store.GetFilters()
	snap.Color[0] = "green"

	assert.Equal(t, filters.Set[string]{"red"}, store.GetFilters().Color)
}

func TestListingStoreExpires(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryListingStore(DefaultListingTTL, func() time.Time { return now })

	listing := domain.Listing{Vehicles: []domain.Vehicle{{ID: 7, Make: "Toyota"}}}
	store.PutListing("make=Toyota", listing)

	got, ok := store.GetListing("make=Toyota")
	require.True(t, ok)
	assert.Equal(t, listing, got)

	now = now.Add(DefaultListingTTL)
	_, ok = store.GetListing("make=Toyota")
	assert.False(t, ok)

	store.PutListing("make=Honda", listing)
	assert.Equal(t, 1, store.Len(), "expired entries are swept on write")

	store.Purge()
	assert.Equal(t, 0, store.Len())
}

func TestListingStoreDisabled(t *testing.T) {
	store := NewMemoryListingStore(0, nil)
	store.PutListing("k", domain.Listing{})
	_, ok := store.GetListing("k")
	assert.False(t, ok)
}

func TestSortModeCycles(t *testing.T) {
	m := SortByRelevance
	for i := 0; i < 5; i++ {
		m = m.Next()
	}
	assert.Equal(t, SortByRelevance, m)
	assert.Equal(t, "newest", SortByYear.String())
}
