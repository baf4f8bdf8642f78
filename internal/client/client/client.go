package client

import (
	"context"
)

// Client is what the services need from the transport. HTTPClient is the
// production implementation; tests substitute fakes.
type Client interface {
	Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error)
}
