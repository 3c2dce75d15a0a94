package search

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"carosearch/internal/codec"
	"carosearch/internal/domain"
	"carosearch/internal/eventbus"
	"carosearch/internal/logic"
)

// Backend is the marketplace API as used by the service
type Backend interface {
	SearchVehicles(ctx context.Context, params url.Values) (domain.Listing, error)
	GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error)
	GetDealer(ctx context.Context, id int) (*domain.Dealer, error)
	DealerVehicles(ctx context.Context, id, page, size int) (domain.Listing, error)
	Makes(ctx context.Context) ([]domain.Facet, error)
	Models(ctx context.Context, vehicleMake string) ([]domain.Facet, error)
	Locations(ctx context.Context) ([]domain.Facet, error)
}

// SearchService runs listing queries, answering from the cache when it can
type SearchService interface {
	Search(ctx context.Context, params codec.SearchParams, page, limit int) (listing domain.Listing, cached bool, err error)
}

// searchService is the concrete implementation
type searchService struct {
	bus        eventbus.EventBus
	backend    Backend
	cache      logic.ListingStore
	timeout    time.Duration
	workerPool chan struct{} // Semaphore for limiting concurrent API calls
}

// NewSearchService creates a search service subscribed to the request
// events of bus. A nil cache disables caching.
func NewSearchService(bus eventbus.EventBus, backend Backend, cache logic.ListingStore, timeout time.Duration) SearchService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &searchService{
		bus:        bus,
		backend:    backend,
		cache:      cache,
		timeout:    timeout,
		workerPool: make(chan struct{}, 4),
	}

	bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchRequestedEvent); ok {
			s.handleSearch(event)
		}
	})
	bus.Subscribe(eventbus.EventVehicleRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.VehicleRequestedEvent); ok {
			s.handleVehicle(event)
		}
	})
	bus.Subscribe(eventbus.EventDealerRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.DealerRequestedEvent); ok {
			s.handleDealer(event)
		}
	})
	bus.Subscribe(eventbus.EventFacetsRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FacetsRequestedEvent); ok {
			s.handleFacets(event)
		}
	})

	return s
}

// Search returns one page of listings for params
func (s *searchService) Search(ctx context.Context, params codec.SearchParams, page, limit int) (domain.Listing, bool, error) {
	paged := params.WithPage(page, limit)
	key := paged.String()

	if s.cache != nil {
		if listing, ok := s.cache.GetListing(key); ok {
			return listing, true, nil
		}
	}

	s.acquire()
	defer s.release()

	listing, err := s.backend.SearchVehicles(ctx, paged.Values())
	if err != nil {
		return domain.Listing{}, false, err
	}
	if s.cache != nil {
		s.cache.PutListing(key, listing)
	}
	return listing, false, nil
}

func (s *searchService) acquire() { s.workerPool <- struct{}{} }
func (s *searchService) release() { <-s.workerPool }

func (s *searchService) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *searchService) handleSearch(event eventbus.SearchRequestedEvent) {
	ctx, cancel := s.requestContext()
	defer cancel()

	listing, cached, err := s.Search(ctx, codec.SearchParams(event.Params), event.Page, event.Limit)
	if err != nil {
		log.Printf("search: request %d failed: %v", event.Seq, err)
		s.bus.Publish(eventbus.SearchFailedEvent{Seq: event.Seq, Err: err})
		return
	}
	s.bus.Publish(eventbus.SearchCompletedEvent{Seq: event.Seq, Listing: listing, Cached: cached})
}

func (s *searchService) handleVehicle(event eventbus.VehicleRequestedEvent) {
	ctx, cancel := s.requestContext()
	defer cancel()
	s.acquire()
	defer s.release()

	v, err := s.backend.GetVehicle(ctx, event.ID)
	if err != nil {
		log.Printf("search: vehicle %d: %v", event.ID, err)
	}
	s.bus.Publish(eventbus.VehicleLoadedEvent{ID: event.ID, Vehicle: v, Err: err})
}

func (s *searchService) handleDealer(event eventbus.DealerRequestedEvent) {
	ctx, cancel := s.requestContext()
	defer cancel()
	s.acquire()
	defer s.release()

	dealer, err := s.backend.GetDealer(ctx, event.ID)
	if err != nil {
		log.Printf("search: dealer %d: %v", event.ID, err)
		s.bus.Publish(eventbus.DealerLoadedEvent{ID: event.ID, Err: err})
		return
	}
	listing, err := s.backend.DealerVehicles(ctx, event.ID, event.Page, event.Limit)
	if err != nil {
		err = fmt.Errorf("failed to load stock: %w", err)
		log.Printf("search: dealer %d: %v", event.ID, err)
	}
	s.bus.Publish(eventbus.DealerLoadedEvent{ID: event.ID, Dealer: dealer, Listing: listing, Err: err})
}

func (s *searchService) handleFacets(event eventbus.FacetsRequestedEvent) {
	ctx, cancel := s.requestContext()
	defer cancel()
	s.acquire()
	defer s.release()

	var out eventbus.FacetsLoadedEvent
	var err error
	if out.Makes, err = s.backend.Makes(ctx); err != nil {
		out.Err = err
	}
	if out.Err == nil && event.Make != "" {
		if out.Models, err = s.backend.Models(ctx, event.Make); err != nil {
			out.Err = err
		}
	}
	if out.Err == nil {
		if out.Locations, err = s.backend.Locations(ctx); err != nil {
			out.Err = err
		}
	}
	if out.Err != nil {
		log.Printf("search: facets: %v", out.Err)
	}
	s.bus.Publish(out)
}
