// Package session holds the lifecycle of a single event search as an
// immutable value and the pure reducer that moves it between states.
package session

import (
	"time"

	"eventscout/internal/domain"
)

// GenericErrorMessage is shown when a failure carries no message of its own
const GenericErrorMessage = "An unexpected error occurred"

// Tips are shown alongside every search error
var Tips = []string{
	"Check the spelling of the city name",
	`Try a major city like "New York" or "London"`,
	`Use hyphens for multi-word cities (e.g., "San-Francisco")`,
	"Try a different location nearby",
}

// Status is the phase a session is in
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Session is the state of the current search. Values are never modified in
// place; Reduce returns a new one. Events must be treated as read-only.
type Session struct {
	Status Status
	Seq    uint64 // sequence number of the latest issued request
	Params domain.SearchParams

	Events           []domain.Event
	City             string
	ShowDescriptions bool

	Message string
}

// Msg is an input to Reduce
type Msg interface {
	sessionMsg()
}

// Submit asks for a new search with raw form values
type Submit struct {
	Params domain.SearchParams
}

// Result carries the outcome of the request tagged Seq
type Result struct {
	Seq      uint64
	Events   []domain.Event
	Err      error
	Duration time.Duration
}

// Retry clears an error so the user can submit again
type Retry struct{}

func (Submit) sessionMsg() {}
func (Result) sessionMsg() {}
func (Retry) sessionMsg()  {}

// Request is the search Reduce wants performed
type Request struct {
	Seq    uint64
	Params domain.SearchParams
}

// Accepts reports whether r answers the latest request still awaited
func (s Session) Accepts(r Result) bool {
	return s.Status == Loading && r.Seq == s.Seq
}

// Reduce applies msg to s. It returns a non-nil Request when a search has to
// be issued. Invalid submissions and stale results leave s unchanged.
func Reduce(s Session, msg Msg) (Session, *Request) {
	switch m := msg.(type) {
	case Submit:
		params, err := domain.NewSearchParams(m.Params.City, m.Params.MaxEvents, m.Params.ShowDescriptions)
		if err != nil {
			return s, nil
		}
		next := Session{
			Status:           Loading,
			Seq:              s.Seq + 1,
			Params:           params,
			City:             params.City,
			ShowDescriptions: params.ShowDescriptions,
		}
		return next, &Request{Seq: next.Seq, Params: params}

	case Result:
		if !s.Accepts(m) {
			return s, nil
		}
		next := s
		if m.Err != nil {
			next.Status = Error
			next.Events = nil
			next.Message = messageFor(m.Err)
			return next, nil
		}
		next.Status = Success
		next.Events = append(make([]domain.Event, 0, len(m.Events)), m.Events...)
		next.Message = ""
		return next, nil

	case Retry:
		if s.Status != Error {
			return s, nil
		}
		return Session{Seq: s.Seq, Params: s.Params}, nil
	}

	return s, nil
}

func messageFor(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
