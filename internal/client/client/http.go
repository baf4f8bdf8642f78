package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dmitrijs2005/examprep-admin/internal/common"
	"github.com/dmitrijs2005/examprep-admin/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks to the admin REST API. Session cookies live in its cookie
// jar; an expired access cookie is recovered with a single shared refresh.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	session   SessionStore
	nav       Navigator
	log       logging.Logger
	refresher refreshCoordinator
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithTimeout bounds every call, refreshes and replays included.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

func WithNavigator(n Navigator) Option {
	return func(c *HTTPClient) { c.nav = n }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL, e.g.
// "https://api.example.com/api/v1".
func NewHTTPClient(baseURL string, session SessionStore, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar},
		session: session,
		nav:     nopNavigator{},
		log:     logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "httpclient")
	return c, nil
}

// Do performs the call and returns the response when the status is 2xx.
// Any other status becomes an *APIError. Network errors are returned as they
// come from net/http and never trigger a refresh.
//
// A 401 on a previously authenticated session is recovered by refreshing the
// session once, shared by every request that hits a 401 meanwhile, and
// replaying the call once. If the refresh fails the session marker is
// cleared, the navigator is sent to the login location and the caller gets a
// *RefreshError.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	req, err := newRequest(method, path, body, opts)
	if err != nil {
		return nil, err
	}

	var (
		resp       *Response
		refreshErr error
		state      = stateNormal
	)

	for !state.terminal() {
		var ev event

		switch state {
		case stateNormal, stateRetry:
			resp, err = c.send(ctx, req)
			if err != nil {
				return nil, err
			}
			ev = classify(req, resp)

		case stateCheckSession:
			ev = evNoSession
			if c.hasSession(ctx) {
				ev = evHasSession
			}

		case stateRefreshing:
			req.retried = true
			refreshErr = c.awaitRefresh(ctx)
			ev = evRefreshOK
			if refreshErr != nil {
				ev = evRefreshFailed
			}
		}

		if state, err = transition(state, ev); err != nil {
			return nil, err
		}
	}

	switch state {
	case stateFailFast:
		c.log.Debug(ctx, "401 without session, not refreshing", "method", req.method, "path", req.path)
		return nil, newAPIError(req, resp)
	case stateLoggedOut:
		return nil, refreshErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(req, resp)
	}
	return resp, nil
}

func (c *HTTPClient) hasSession(ctx context.Context) bool {
	ok, err := c.session.HasSession(ctx)
	if err != nil {
		c.log.Warn(ctx, "session marker unreadable, treating as absent", "err", err)
		return false
	}
	return ok
}

// awaitRefresh either runs the refresh as leader or waits for the running one.
func (c *HTTPClient) awaitRefresh(ctx context.Context) error {
	leader, wait := c.refresher.acquireOrWait()
	if !leader {
		select {
		case err := <-wait:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// The refresh outcome is shared, so one caller's cancellation must not
	// decide it for everybody.
	refreshCtx := context.WithoutCancel(ctx)

	c.log.Info(ctx, "access expired, refreshing session")
	if err := c.refresh(refreshCtx); err != nil {
		rerr := &RefreshError{Err: err}
		// Logged out before the flag drops, so a late 401 queues up and is
		// rejected instead of starting a second refresh.
		c.forceLogout(refreshCtx)
		n := c.refresher.rejectAll(rerr)
		c.log.Warn(ctx, "session refresh failed", "err", err, "waiters", n)
		return rerr
	}

	n := c.refresher.resolveAll()
	c.log.Info(ctx, "session refreshed", "waiters", n)
	return nil
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	req, err := newRequest(http.MethodPost, common.RefreshPath, nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(req, resp)
	}
	return nil
}

// forceLogout drops the session marker and sends the user to the login
// location. Repeating it while already there is a no-op for the router.
func (c *HTTPClient) forceLogout(ctx context.Context) {
	if err := c.session.ClearSession(ctx); err != nil {
		c.log.Error(ctx, "clear session marker", "err", err)
	}
	if c.nav.Location() != common.LoginLocation {
		c.nav.Navigate(common.LoginLocation)
	}
}

func (c *HTTPClient) send(ctx context.Context, req *request) (*Response, error) {
	u := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.header {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	httpReq.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", req.method, "path", req.path, "request_id", requestID, "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debug(ctx, "request done",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"retried", req.retried,
		"elapsed", time.Since(started),
	)

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}
