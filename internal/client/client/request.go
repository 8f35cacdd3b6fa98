package client

import (
	"context"
	"io"
	"net/url"
)

// Request describes one backend call. Endpoint is relative to the base URL.
// Body is JSON-encoded; Multipart, when set, takes precedence over Body.
type Request struct {
	Method    string
	Endpoint  string
	Query     url.Values
	Body      any
	Multipart *Multipart
	// Anonymous suppresses the Authorization header.
	Anonymous bool
}

// Multipart is a single-file form upload.
type Multipart struct {
	FieldName string
	FileName  string
	File      io.Reader
	Fields    map[string]string
}

// Doer performs a request and decodes a successful JSON body into out.
// Implementations return *Error on failure.
type Doer interface {
	Do(ctx context.Context, req *Request, out any) error
}

// Result is the uniform outcome of Fetch: either Data or Error is meaningful.
type Result[T any] struct {
	Data   T
	Error  string
	Kind   ErrorKind
	Status int
	Fields map[string]string
	err    *Error
}

func (r Result[T]) OK() bool {
	return r.err == nil
}

// Err returns the underlying *Error, or nil on success.
func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Unwrap turns the result back into the (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Data, r.Err()
}

// Fetch runs req through d and never panics on HTTP-level failures: every
// outcome is folded into a Result.
func Fetch[T any](ctx context.Context, d Doer, req *Request) Result[T] {
	var data T
	if err := d.Do(ctx, req, &data); err != nil {
		e := AsError(err)
		return Result[T]{
			Error:  e.Message,
			Kind:   e.Kind,
			Status: e.Status,
			Fields: e.Fields,
			err:    e,
		}
	}
	return Result[T]{Data: data}
}
