package search

import (
	"errors"
	"fmt"
)

// FetchMessage is the message shown for every transport or status failure
const FetchMessage = "Error fetching events"

// ErrFetch matches every failure returned by a Client
var ErrFetch = errors.New("fetch failed")

// Kind classifies a fetch failure
type Kind int

const (
	KindNetwork Kind = iota // transport error or non-2xx status
	KindParse               // body is not a JSON list of events
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError is the single failure type a search can produce. Error returns
// the human readable message.
type FetchError struct {
	Kind    Kind
	Message string
	Status  int // HTTP status, 0 when no response was received
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

// Detail includes the cause for logs
func (e *FetchError) Detail() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s (%s, status %d): %v", e.Message, e.Kind, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Kind, e.Status)
	default:
		return fmt.Sprintf("%s (%s)", e.Message, e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func networkError(status int, cause error) *FetchError {
	return &FetchError{Kind: KindNetwork, Message: FetchMessage, Status: status, Err: cause}
}

func parseError(cause error) *FetchError {
	return &FetchError{Kind: KindParse, Message: "Error reading events: unexpected response format", Err: cause}
}
