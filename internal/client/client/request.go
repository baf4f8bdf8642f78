package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// request is one logical call. The body is kept as bytes so the call can be
// replayed after a refresh.
type request struct {
	method  string
	path    string
	query   url.Values
	header  http.Header
	body    []byte
	retried bool
}

// RequestOption customises a single call.
type RequestOption func(*request)

// WithQuery adds query parameters.
func WithQuery(q url.Values) RequestOption {
	return func(r *request) {
		for k, vs := range q {
			for _, v := range vs {
				r.query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a header on this call only.
func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.header.Set(key, value) }
}

// WithBearer attaches an explicit bearer credential to this call only. The
// OTP verification step is the one place that needs it; every other call is
// authenticated by cookies.
func WithBearer(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

func newRequest(method, path string, body any, opts []RequestOption) (*request, error) {
	r := &request{
		method: strings.ToUpper(method),
		path:   path,
		query:  url.Values{},
		header: http.Header{},
	}

	switch b := body.(type) {
	case nil:
	case []byte:
		r.body = b
	case json.RawMessage:
		r.body = b
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", r.method, path, err)
		}
		r.body = encoded
	}
	if r.body != nil {
		r.header.Set("Content-Type", "application/json")
	}

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Envelope is the backend's standard response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals the whole body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// DecodeData unmarshals the envelope's data field into v.
func (r *Response) DecodeData(v any) error {
	var env Envelope
	if err := r.Decode(&env); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
