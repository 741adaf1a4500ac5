package domain

import (
	"errors"
	"fmt"
)

// ErrBadReference means a document identifier could not be derived
// from the row's document URL.
var ErrBadReference = errors.New("not a recognized document URL")

// FetchError reports a failure to retrieve the rendered form of a
// document: a malformed reference, a network failure, or an unusable
// remote response.
type FetchError struct {
	Ref string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports document bytes that could not be read as a PDF.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
