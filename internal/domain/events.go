package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested  EventType = "SearchRequested"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventVehicleRequested EventType = "VehicleRequested"
	EventVehicleLoaded    EventType = "VehicleLoaded"
	EventDealerRequested  EventType = "DealerRequested"
	EventDealerLoaded     EventType = "DealerLoaded"
	EventFacetsRequested  EventType = "FacetsRequested"
	EventFacetsLoaded     EventType = "FacetsLoaded"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent asks for one page of listings.
// Params are the API search parameters without page and limit.
type SearchRequestedEvent struct {
	Seq    int
	Params map[string]string
	Page   int
	Limit  int
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchCompletedEvent carries the listing for a search request
type SearchCompletedEvent struct {
	Seq     int
	Listing Listing
	Cached  bool
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the listing API call fails
type SearchFailedEvent struct {
	Seq int
	Err error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// VehicleRequestedEvent asks for a single listing
type VehicleRequestedEvent struct {
	ID int
}

func (e VehicleRequestedEvent) Type() EventType { return EventVehicleRequested }

// VehicleLoadedEvent carries a single listing or the error loading it
type VehicleLoadedEvent struct {
	ID      int
	Vehicle *Vehicle
	Err     error
}

func (e VehicleLoadedEvent) Type() EventType { return EventVehicleLoaded }

// DealerRequestedEvent asks for a dealer profile and its stock
type DealerRequestedEvent struct {
	ID    int
	Page  int
	Limit int
}

func (e DealerRequestedEvent) Type() EventType { return EventDealerRequested }

// DealerLoadedEvent carries a dealer profile and one page of its vehicles
type DealerLoadedEvent struct {
	ID      int
	Dealer  *Dealer
	Listing Listing
	Err     error
}

func (e DealerLoadedEvent) Type() EventType { return EventDealerLoaded }

// FacetsRequestedEvent asks for make/model/location options.
// Models are only loaded when Make is set.
type FacetsRequestedEvent struct {
	Make string
}

func (e FacetsRequestedEvent) Type() EventType { return EventFacetsRequested }

// FacetsLoadedEvent carries option lists for the filter editor
type FacetsLoadedEvent struct {
	Makes     []Facet
	Models    []Facet
	Locations []Facet
	Err       error
}

func (e FacetsLoadedEvent) Type() EventType { return EventFacetsLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Environment string
	APIURL      string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	SavedSearches map[string]string // name -> query string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
