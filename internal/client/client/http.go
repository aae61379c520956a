package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bloodlink/internal/common"
	"github.com/dmitrijs2005/bloodlink/internal/logging"
)

const (
	DefaultTimeout     = 15 * time.Second
	DefaultRefreshPath = "/token/refresh/"

	contentTypeJSON = "application/json"
	maxBodySize     = 4 << 20
)

type Option func(*HTTPClient)

// WithTimeout sets the deadline applied to each call. Non-positive values
// keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

func WithRefreshPath(path string) Option {
	return func(c *HTTPClient) {
		if path != "" {
			c.refreshPath = "/" + strings.TrimPrefix(path, "/")
		}
	}
}

// HTTPClient implements Client against the REST/JSON backend. It is safe
// for concurrent use.
type HTTPClient struct {
	baseURL     string
	tokens      TokenSource
	http        *http.Client
	log         logging.Logger
	timeout     time.Duration
	refreshPath string

	refreshMu sync.Mutex
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokens:      tokens,
		http:        http.DefaultClient,
		log:         logging.Discard(),
		timeout:     DefaultTimeout,
		refreshPath: DefaultRefreshPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one logical call. route is the path template used as
// the metrics label, path the concrete one.
type request struct {
	method      string
	route       string
	path        string
	auth        bool
	body        []byte
	contentType string
	out         any
}

func (r request) endpoint() string {
	return r.method + " " + r.route
}

func newJSONRequest(method, route, path string, auth bool, payload, out any) (request, error) {
	r := request{method: method, route: route, path: path, auth: auth, out: out}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return request{}, fmt.Errorf("encode %s: %w", route, err)
		}
		r.body = b
		r.contentType = contentTypeJSON
	}
	return r, nil
}

// call is the JSON shorthand used by most endpoints.
func (c *HTTPClient) call(ctx context.Context, method, route, path string, auth bool, payload, out any) error {
	r, err := newJSONRequest(method, route, path, auth, payload, out)
	if err != nil {
		return err
	}
	return c.do(ctx, r)
}

func (c *HTTPClient) do(ctx context.Context, r request) error {
	start := time.Now()
	err := c.exchange(ctx, r)
	c.observe(ctx, r.endpoint(), start, err)
	return err
}

func (c *HTTPClient) observe(ctx context.Context, endpoint string, start time.Time, err error) {
	apiRequestsCounter.WithLabelValues(endpoint, outcomeOf(err)).Inc()
	apiRequestDurationHist.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.log.Warn(ctx, "api call failed", "endpoint", endpoint, "error", err)
	}
}

func (c *HTTPClient) exchange(ctx context.Context, r request) error {
	var token string
	if r.auth {
		t, err := c.tokens.TokenFor(ctx)
		if err != nil {
			return err
		}
		token = t
	}

	requestID := uuid.NewString()
	status, body, err := c.send(ctx, r, token, requestID)
	if err != nil {
		return err
	}

	if r.auth && status == http.StatusUnauthorized {
		fresh, err := c.refresh(ctx, token)
		if err != nil {
			return err
		}
		status, body, err = c.send(ctx, r, fresh, requestID)
		if err != nil {
			return err
		}
	}

	return decodeResponse(status, body, r.out)
}

func (c *HTTPClient) send(ctx context.Context, r request, token, requestID string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request %s: %w", r.endpoint(), err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, classify(err)
	}

	c.log.Debug(ctx, "api call",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)
	return resp.StatusCode, data, nil
}

// refresh exchanges the refresh token for a new access token. stale is the
// token that was rejected; if another call already rotated it, the current
// token is returned without a second refresh.
func (c *HTTPClient) refresh(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current, err := c.tokens.TokenFor(ctx); err == nil && current != stale {
		return current, nil
	}

	refreshToken := c.tokens.RefreshToken()
	if refreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token", ErrUnauthorized)
	}

	var reply struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	r, err := newJSONRequest(http.MethodPost, c.refreshPath, c.refreshPath, false,
		map[string]string{"refresh": refreshToken}, &reply)
	if err != nil {
		return "", err
	}

	start := time.Now()
	err = c.refreshExchange(ctx, r)
	c.observe(ctx, r.endpoint(), start, err)
	if err != nil {
		return "", err
	}
	if reply.Access == "" {
		return "", fmt.Errorf("%w: refresh reply without access token", ErrUnauthorized)
	}

	if err := c.tokens.Rotate(ctx, reply.Access, reply.Refresh, ExpiryFromToken(reply.Access)); err != nil {
		return "", fmt.Errorf("rotate tokens: %w", err)
	}
	c.log.Info(ctx, "session refreshed")
	return reply.Access, nil
}

// refreshExchange reports any rejection of the refresh token as ErrUnauthorized.
func (c *HTTPClient) refreshExchange(ctx context.Context, r request) error {
	status, body, err := c.send(ctx, r, "", uuid.NewString())
	if err != nil {
		return err
	}
	if status >= 400 && status < 500 {
		return fmt.Errorf("%w: refresh rejected: %w", ErrUnauthorized, decodeServerError(status, body))
	}
	return decodeResponse(status, body, r.out)
}

func decodeResponse(status int, body []byte, out any) error {
	if status < 200 || status >= 300 {
		return decodeServerError(status, body)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// classify maps transport failures onto ErrTimeout and ErrUnavailable.
// Cancellation by the caller is returned as is.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func outcomeOf(err error) string {
	var se *ServerError
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrUnauthenticated):
		return outcomeUnauthenticated
	case errors.Is(err, ErrUnauthorized):
		return outcomeUnauthorized
	case errors.Is(err, ErrTimeout):
		return outcomeTimeout
	case errors.Is(err, ErrUnavailable):
		return outcomeUnavailable
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	case errors.As(err, &se):
		return outcomeServerError
	}
	return outcomeError
}
