package apperrors

import (
	"errors"
	"fmt"
)

// ResolutionFailed is returned when a show search cannot be completed: transport failure,
// a non-success HTTP status, or an undecodable response.
type ResolutionFailed struct {
	Query      string
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface.
func (e *ResolutionFailed) Error() string {
	msg := fmt.Sprintf("show search for %q failed", e.Query)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ResolutionFailed) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *ResolutionFailed) Is(target error) bool {
	_, ok := target.(*ResolutionFailed)
	return ok
}

// NoMatches reports that a query resolved to zero shows where one was required.
// Resolution itself treats an empty result as a valid outcome and never returns it.
type NoMatches struct {
	Query string
}

// Error implements the error interface.
func (e *NoMatches) Error() string {
	if e.Query == "" {
		return "no matching show"
	}
	return fmt.Sprintf("no show matches %q", e.Query)
}

// Is allows for error checking with errors.Is().
func (e *NoMatches) Is(target error) bool {
	_, ok := target.(*NoMatches)
	return ok
}

// ErrNoMatches is a sentinel usable as an errors.Is target.
var ErrNoMatches = &NoMatches{}

// NewNoMatchesError creates a NoMatches error for the given query.
func NewNoMatchesError(query string) *NoMatches {
	return &NoMatches{Query: query}
}

// FetchFailed is returned when the episode list of a show cannot be retrieved.
type FetchFailed struct {
	ShowID     int
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface.
func (e *FetchFailed) Error() string {
	msg := fmt.Sprintf("fetching episodes for show %d failed", e.ShowID)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *FetchFailed) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *FetchFailed) Is(target error) bool {
	_, ok := target.(*FetchFailed)
	return ok
}

// MalformedData is returned when a response violates the expected schema.
// Index is the position of the offending entry, or -1 when the whole payload is at fault.
type MalformedData struct {
	ShowID int
	Index  int
	Reason string
}

// Error implements the error interface.
func (e *MalformedData) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed episode data for show %d: %s", e.ShowID, e.Reason)
	}
	return fmt.Sprintf("malformed episode %d for show %d: %s", e.Index, e.ShowID, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *MalformedData) Is(target error) bool {
	_, ok := target.(*MalformedData)
	return ok
}

// AmbiguousPivot is returned when two episodes share a (season, episode number) key.
type AmbiguousPivot struct {
	Season int
	Number int
}

// Error implements the error interface.
func (e *AmbiguousPivot) Error() string {
	return fmt.Sprintf("duplicate episode S%02dE%02d: cannot pivot into a rating grid", e.Season, e.Number)
}

// Is allows for error checking with errors.Is().
func (e *AmbiguousPivot) Is(target error) bool {
	_, ok := target.(*AmbiguousPivot)
	return ok
}

// Kind returns a stable, machine-readable name for the error class of err,
// or "internal" when err belongs to none of the types above.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, &ResolutionFailed{}):
		return "resolution_failed"
	case errors.Is(err, &NoMatches{}):
		return "no_matches"
	case errors.Is(err, &FetchFailed{}):
		return "fetch_failed"
	case errors.Is(err, &MalformedData{}):
		return "malformed_data"
	case errors.Is(err, &AmbiguousPivot{}):
		return "ambiguous_pivot"
	default:
		return "internal"
	}
}
