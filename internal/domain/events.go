package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchSucceeded EventType = "SearchSucceeded"
	EventSearchFailed    EventType = "SearchFailed"
	EventSearchDiscarded EventType = "SearchDiscarded"
	EventSearchRetried   EventType = "SearchRetried"
	EventSortChanged     EventType = "SortChanged"
	EventConfigLoaded    EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a search request is issued
type SearchStartedEvent struct {
	Seq    uint64
	Params SearchParams
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchSucceededEvent is emitted when the latest search returns events
type SearchSucceededEvent struct {
	Seq      uint64
	City     string
	Count    int
	Duration time.Duration
}

func (e SearchSucceededEvent) Type() EventType { return EventSearchSucceeded }

// SearchFailedEvent is emitted when the latest search fails
type SearchFailedEvent struct {
	Seq      uint64
	City     string
	Message  string
	Err      error
	Duration time.Duration
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a response arrives for a superseded search
type SearchDiscardedEvent struct {
	Seq    uint64
	Latest uint64
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// SearchRetriedEvent is emitted when an error is cleared for a fresh submission
type SearchRetriedEvent struct{}

func (e SearchRetriedEvent) Type() EventType { return EventSearchRetried }

// SortChangedEvent is emitted when the display order changes
type SortChangedEvent struct {
	OldKey SortKey
	NewKey SortKey
}

func (e SortChangedEvent) Type() EventType { return EventSortChanged }

// ConfigLoadedEvent is emitted once configuration is resolved at startup
type ConfigLoadedEvent struct {
	APIURL      string
	Placeholder bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
