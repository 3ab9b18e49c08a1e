package parser

import "io"

// Parser defines a generic interface for decoding a list payload from the metadata API
type Parser[T any] interface {
	Parse(body io.Reader) ([]T, error)
}

// SingleResultParser defines a generic interface for decoding a single-object payload
type SingleResultParser[T any] interface {
	Parse(body io.Reader) (T, error)
}
