package domain

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackImageURL is shown for events without an image or whose image fails to load
const FallbackImageURL = "https://images.pexels.com/photos/7991579/pexels-photo-7991579.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940"

// DefaultMaxEvents is the preselected result count on the search form
const DefaultMaxEvents = 5

// AllowedMaxEvents lists the result counts a search may ask for
var AllowedMaxEvents = []int{5, 10, 15, 20}

// PopularCities are offered as quick picks on the search form
var PopularCities = []string{"New York", "London", "Tokyo", "Paris", "Sydney", "Berlin"}

// Validation errors. Both are raised before any network call happens.
var (
	ErrEmptyCity        = errors.New("city must not be empty")
	ErrInvalidMaxEvents = errors.New("max events is not an allowed value")
)

// Event represents a single discoverable happening returned by the search endpoint
type Event struct {
	Name        string `json:"name" yaml:"name"`
	DateTime    string `json:"date_time" yaml:"date_time"` // free text, e.g. "Saturday, June 14"
	Location    string `json:"location" yaml:"location"`
	Link        string `json:"link" yaml:"link"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

// Key returns the display key for the event at the given list position
func (e Event) Key(index int) string {
	return fmt.Sprintf("%s-%d", e.Name, index)
}

// ImageURL returns the event image, or the fallback image when none is set
func (e Event) ImageURL() string {
	if img := strings.TrimSpace(e.Image); img != "" {
		return img
	}
	return FallbackImageURL
}

// LocationOrDefault returns the location text shown in listings
func (e Event) LocationOrDefault() string {
	if loc := strings.TrimSpace(e.Location); loc != "" {
		return loc
	}
	return "Location not specified"
}

// SearchParams is the body posted to the search endpoint
type SearchParams struct {
	City             string `json:"city"`
	MaxEvents        int    `json:"maxEvents"`
	ShowDescriptions bool   `json:"showDescriptions"`
}

// NewSearchParams builds validated search parameters from raw form input.
// The city is whitespace-trimmed.
func NewSearchParams(city string, maxEvents int, showDescriptions bool) (SearchParams, error) {
	p := SearchParams{
		City:             strings.TrimSpace(city),
		MaxEvents:        maxEvents,
		ShowDescriptions: showDescriptions,
	}
	if err := p.Validate(); err != nil {
		return SearchParams{}, err
	}
	return p, nil
}

// Validate checks the invariants a search relies on
func (p SearchParams) Validate() error {
	trimmed := strings.TrimSpace(p.City)
	if trimmed == "" {
		return ErrEmptyCity
	}
	if trimmed != p.City {
		return fmt.Errorf("city %q is not trimmed", p.City)
	}
	if !IsAllowedMaxEvents(p.MaxEvents) {
		return fmt.Errorf("%w: %d", ErrInvalidMaxEvents, p.MaxEvents)
	}
	return nil
}

// IsAllowedMaxEvents reports whether n is one of AllowedMaxEvents
func IsAllowedMaxEvents(n int) bool {
	for _, allowed := range AllowedMaxEvents {
		if n == allowed {
			return true
		}
	}
	return false
}

// NextMaxEvents cycles through the allowed counts, wrapping around
func NextMaxEvents(current int) int {
	for i, allowed := range AllowedMaxEvents {
		if allowed == current {
			return AllowedMaxEvents[(i+1)%len(AllowedMaxEvents)]
		}
	}
	return AllowedMaxEvents[0]
}

// SortKey selects the display order of a result list
type SortKey int

const (
	SortDefault SortKey = iota // server order
	SortDate                   // lexicographic over the date text
	SortName                   // locale-aware over the name
)

// SortKeys lists every key in menu order
var SortKeys = []SortKey{SortDefault, SortDate, SortName}

func (k SortKey) String() string {
	switch k {
	case SortDefault:
		return "default"
	case SortDate:
		return "date"
	case SortName:
		return "name"
	default:
		return "unknown"
	}
}

// Label is the human readable menu label
func (k SortKey) Label() string {
	switch k {
	case SortDate:
		return "Date (Earliest First)"
	case SortName:
		return "Name (A-Z)"
	default:
		return "Default"
	}
}

// ParseSortKey parses the String form of a sort key
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return SortDefault, nil
	case "date":
		return SortDate, nil
	case "name":
		return SortName, nil
	default:
		return SortDefault, fmt.Errorf("unknown sort key %q", s)
	}
}
