package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryChanged    EventType = "QueryChanged"
	EventPageRequested   EventType = "PageRequested"
	EventPageMerged      EventType = "PageMerged"
	EventResponseDropped EventType = "ResponseDropped"
	EventFetchFailed     EventType = "FetchFailed"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryChangedEvent is emitted when a new search session starts
type QueryChangedEvent struct {
	Query      string
	Generation uint64
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// PageRequestedEvent is emitted when the controller issues a fetch
type PageRequestedEvent struct {
	Query      string
	Page       int
	Offset     int
	Limit      int
	Generation uint64
}

func (e PageRequestedEvent) Type() EventType { return EventPageRequested }

// PageMergedEvent is emitted when a page lands in the current session
type PageMergedEvent struct {
	Query      string
	Page       int
	Received   int
	Total      int
	PagesLeft  int
	Generation uint64
}

func (e PageMergedEvent) Type() EventType { return EventPageMerged }

// ResponseDroppedEvent is emitted when a response for a superseded query arrives
type ResponseDroppedEvent struct {
	Query             string
	Page              int
	Generation        uint64
	CurrentGeneration uint64
}

func (e ResponseDroppedEvent) Type() EventType { return EventResponseDropped }

// FetchFailedEvent is emitted when a fetch for the current session fails
type FetchFailedEvent struct {
	Query      string
	Page       int
	Generation uint64
	Err        error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
