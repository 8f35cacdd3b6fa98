package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 20

const RequestIDHeader = "X-Request-ID"

// TokenSource yields the current bearer token; "" means anonymous.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client. The default has no
// timeout; callers bound requests through their context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func NewHTTPClient(baseURL string, tokens TokenSource, log logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{baseURL: u, http: &http.Client{}, tokens: tokens, log: log}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Do(ctx context.Context, req *Request, out any) error {
	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "method", req.Method, "endpoint", req.Endpoint)

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return &Error{Kind: KindServer, Message: MsgGeneric, cause: err}
	}
	httpReq.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &Error{Kind: KindNetwork, Message: MsgNetwork, cause: err}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errorFromResponse(resp.StatusCode, body)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: MsgNetwork, Status: resp.StatusCode, cause: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Warn(ctx, "response decode failed", "error", err)
		return &Error{Kind: KindParse, Message: MsgParse, Status: resp.StatusCode, cause: err}
	}
	return nil
}

func (c *HTTPClient) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	u := c.baseURL.JoinPath(req.Endpoint)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Multipart != nil:
		buf, ct, err := encodeMultipart(req.Multipart)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if !req.Anonymous && c.tokens != nil {
		token, err := c.tokens.Get(ctx)
		if err != nil {
			c.log.Warn(ctx, "token unavailable, sending request without it", "error", err)
		} else if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

func encodeMultipart(m *Multipart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	field := m.FieldName
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, m.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, m.File); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// errorBody covers the shapes the backend uses for failures:
//
//	{"detail": "Incorrect email or password"}
//	{"detail": [{"loc": ["body", "email"], "msg": "value is not a valid email"}]}
//	{"message": "Campaign not found"}
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func errorFromResponse(status int, body []byte) *Error {
	e := &Error{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Message, e.Fields = parseDetail(eb.Detail)
		if e.Message == "" {
			e.Message = eb.Message
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindUnauthorized
		if e.Message == "" {
			e.Message = MsgUnauthorized
		}
	case len(e.Fields) > 0 || status == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
	default:
		e.Kind = KindServer
	}

	if e.Message == "" {
		e.Message = MsgGeneric
	}
	return e
}

func parseDetail(raw json.RawMessage) (string, map[string]string) {
	if len(raw) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var list []fieldError
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		fields := make(map[string]string, len(list))
		msgs := make([]string, 0, len(list))
		for _, fe := range list {
			fields[fieldName(fe.Loc)] = fe.Msg
			msgs = append(msgs, fe.Msg)
		}
		return strings.Join(msgs, "; "), fields
	}

	var obj struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message, nil
		}
		return obj.Msg, nil
	}
	return "", nil
}

// fieldName drops the leading "body"/"query" segment of a loc path.
func fieldName(loc []any) string {
	parts := make([]string, 0, len(loc))
	for i, p := range loc {
		s := fmt.Sprint(p)
		if i == 0 && (s == "body" || s == "query" || s == "path") && len(loc) > 1 {
			continue
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "_"
	}
	return strings.Join(parts, ".")
}

// IsCanceled reports whether err came from the caller cancelling its context.
// Deadline expiry is not cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
