package client

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrUnexpected   = errors.New("unexpected response")
)

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation"
	KindServer       ErrorKind = "server"
	KindParse        ErrorKind = "parse"
)

const (
	MsgNetwork      = "Network error occurred"
	MsgUnauthorized = "Authentication required"
	MsgGeneric      = "An unexpected error occurred"
	MsgParse        = "Unexpected response from server"
)

// Error is the only error type HTTPClient returns. Message is safe to show
// to the user as is; it carries the server's detail/message when present.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	// Fields maps a form field to its validation message.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is lets callers match on the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrUnexpected:
		return e.Kind == KindServer || e.Kind == KindParse
	}
	return false
}

// FieldSummary renders Fields as "field: message" lines in stable order.
func (e *Error) FieldSummary() string {
	if len(e.Fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = n + ": " + e.Fields[n]
	}
	return strings.Join(lines, "\n")
}

// AsError converts any error into *Error. Foreign errors become KindServer
// with the generic message so nothing unclassified reaches a view.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindServer, Message: MsgGeneric, cause: err}
}
