package client

import "errors"

var (
	// errEmptyQuery is the cause reported when a search is attempted with a blank query
	errEmptyQuery = errors.New("query is empty")

	// errInvalidShowID is the cause reported for show ids below 1
	errInvalidShowID = errors.New("show id must be positive")
)
