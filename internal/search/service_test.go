package search

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carosearch/internal/codec"
	"carosearch/internal/domain"
	"carosearch/internal/eventbus"
	"carosearch/internal/logic"
)

type fakeBackend struct {
	mu       sync.Mutex
	searches []url.Values
	err      error
}

func (b *fakeBackend) SearchVehicles(_ context.Context, params url.Values) (domain.Listing, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searches = append(b.searches, params)
	if b.err != nil {
		return domain.Listing{}, b.err
	}
	return domain.Listing{Vehicles: []domain.Vehicle{{ID: 1, Make: params.Get("make")}}}, nil
}

func (b *fakeBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.searches)
}

func (b *fakeBackend) GetVehicle(_ context.Context, id int) (*domain.Vehicle, error) {
	if id == 404 {
		return nil, errors.New("not found")
	}
	return &domain.Vehicle{ID: id, Title: "Aqua"}, nil
}

func (b *fakeBackend) GetDealer(_ context.Context, id int) (*domain.Dealer, error) {
	return &domain.Dealer{ID: id, BusinessName: "Hill Motors"}, nil
}

func (b *fakeBackend) DealerVehicles(_ context.Context, id, page, size int) (domain.Listing, error) {
	return domain.Listing{Vehicles: []domain.Vehicle{{ID: 9}}, Pagination: &domain.Pagination{Page: page, Limit: size}}, nil
}

func (b *fakeBackend) Makes(context.Context) ([]domain.Facet, error) {
	return []domain.Facet{{Name: "Toyota", Count: 3}}, nil
}

func (b *fakeBackend) Models(_ context.Context, vehicleMake string) ([]domain.Facet, error) {
	return []domain.Facet{{Name: vehicleMake + " Aqua", Count: 1}}, nil
}

func (b *fakeBackend) Locations(context.Context) ([]domain.Facet, error) {
	return []domain.Facet{{Name: "Kandy", Count: 2}}, nil
}

func await[T eventbus.DomainEvent](t *testing.T, bus eventbus.EventBus, eventType eventbus.EventType) <-chan T {
	t.Helper()
	ch := make(chan T, 4)
	bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
		if ev, ok := e.(T); ok {
			ch <- ev
		}
	})
	return ch
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	var zero T
	return zero
}

func TestSearchUsesCache(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	backend := &fakeBackend{}
	svc := NewSearchService(bus, backend, logic.NewMemoryListingStore(time.Minute, nil), time.Second)

	params := codec.SearchParams{"make": "Toyota"}
	listing, cached, err := svc.Search(context.Background(), params, 1, 20)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "Toyota", listing.Vehicles[0].Make)

	_, cached, err = svc.Search(context.Background(), params, 1, 20)
	require.NoError(t, err)
	assert.True(t, cached)

	_, cached, err = svc.Search(context.Background(), params, 2, 20)
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Equal(t, 2, backend.calls())
	assert.Equal(t, "1", backend.searches[0].Get("page"))
	assert.Equal(t, "20", backend.searches[0].Get("limit"))
}

func TestSearchRequestedPublishesResult(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	NewSearchService(bus, &fakeBackend{}, nil, time.Second)
	completed := await[eventbus.SearchCompletedEvent](t, bus, eventbus.EventSearchCompleted)

	bus.Publish(eventbus.SearchRequestedEvent{Seq: 7, Params: map[string]string{"make": "Mazda"}, Page: 1, Limit: 10})

	ev := receive(t, completed)
	assert.Equal(t, 7, ev.Seq)
	assert.Equal(t, "Mazda", ev.Listing.Vehicles[0].Make)
}

func TestSearchFailurePublishesError(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	boom := errors.New("boom")
	NewSearchService(bus, &fakeBackend{err: boom}, nil, time.Second)
	failed := await[eventbus.SearchFailedEvent](t, bus, eventbus.EventSearchFailed)

	bus.Publish(eventbus.SearchRequestedEvent{Seq: 3})

	ev := receive(t, failed)
	assert.Equal(t, 3, ev.Seq)
	assert.ErrorIs(t, ev.Err, boom)
}

func TestVehicleDealerAndFacetEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	NewSearchService(bus, &fakeBackend{}, nil, time.Second)
	vehicles := await[eventbus.VehicleLoadedEvent](t, bus, eventbus.EventVehicleLoaded)
	dealers := await[eventbus.DealerLoadedEvent](t, bus, eventbus.EventDealerLoaded)
	facets := await[eventbus.FacetsLoadedEvent](t, bus, eventbus.EventFacetsLoaded)

	bus.Publish(eventbus.VehicleRequestedEvent{ID: 404})
	ev := receive(t, vehicles)
	assert.Error(t, ev.Err)
	assert.Nil(t, ev.Vehicle)

	bus.Publish(eventbus.DealerRequestedEvent{ID: 5, Page: 2, Limit: 12})
	dl := receive(t, dealers)
	require.NoError(t, dl.Err)
	assert.Equal(t, "Hill Motors", dl.Dealer.BusinessName)
	assert.Equal(t, 12, dl.Listing.Pagination.Limit)

	bus.Publish(eventbus.FacetsRequestedEvent{Make: "Toyota"})
	fl := receive(t, facets)
	require.NoError(t, fl.Err)
	assert.Equal(t, "Toyota Aqua", fl.Models[0].Name)
	assert.Len(t, fl.Locations, 1)
}
