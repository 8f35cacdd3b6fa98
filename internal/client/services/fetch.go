package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

var ErrEmptyID = errors.New("empty id")

// get decodes a single object. Errors are returned as *client.Error.
func get[T any](ctx context.Context, d client.Doer, endpoint string) (*T, error) {
	res := client.Fetch[T](ctx, d, &client.Request{Method: http.MethodGet, Endpoint: endpoint})
	if !res.OK() {
		return nil, res.Err()
	}
	return &res.Data, nil
}

// list decodes a JSON array. A body of the wrong shape is logged and reported
// as an empty list so a view can still render.
func list[T any](ctx context.Context, d client.Doer, log logging.Logger, endpoint string) ([]T, error) {
	res := client.Fetch[[]T](ctx, d, &client.Request{Method: http.MethodGet, Endpoint: endpoint})
	if !res.OK() {
		if res.Kind == client.KindParse {
			log.Warn(ctx, "unexpected list shape", "endpoint", endpoint, "error", res.Error)
			return []T{}, nil
		}
		return nil, res.Err()
	}
	if res.Data == nil {
		return []T{}, nil
	}
	return res.Data, nil
}

func send[T any](ctx context.Context, d client.Doer, method, endpoint string, body any) (*T, error) {
	res := client.Fetch[T](ctx, d, &client.Request{Method: method, Endpoint: endpoint, Body: body})
	if !res.OK() {
		return nil, res.Err()
	}
	return &res.Data, nil
}

// path joins a collection path and an escaped id.
func path(prefix, id string, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
