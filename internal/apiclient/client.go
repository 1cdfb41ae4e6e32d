// Package apiclient issues authenticated requests to the remote store API. It owns no state beyond the
// session cookie jar and retries nothing.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"backoffice/internal/model"

	"github.com/rs/zerolog"
)

// ErrUnauthorized is matched by any APIError carrying a 401.
var ErrUnauthorized = errors.New("store api: unauthorized")

// APIError is a non-2xx answer from the store API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s failed: status %d, body: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is lets callers match on ErrUnauthorized and the model sentinels the status maps to.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized, model.ErrNotAuthenticated:
		return e.StatusCode == http.StatusUnauthorized
	case model.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the store API with a cookie-based session.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     *sessionJar
	logger  zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

// New creates a client for the API rooted at opts.BaseURL.
func New(opts Options, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", opts.BaseURL)
	}

	jar, err := newSessionJar()
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		jar:     jar,
		logger:  logger.With().Str("component", "apiclient").Logger(),
	}, nil
}

// OnUnauthorized registers the hook run whenever the API answers 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// ResetSession drops every cookie held for the API.
func (c *Client) ResetSession() {
	c.jar.reset()
}

// HasSessionCookie reports whether the jar currently holds a cookie for the API.
func (c *Client) HasSessionCookie() bool {
	return len(c.jar.Cookies(c.baseURL)) > 0
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// do sends a JSON request and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s %s payload: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path)
}

func (c *Client) send(req *http.Request, path string) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", req.Method, path, err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("store api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized()
		}
		return nil, apiErr
	}

	return respBody, nil
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func decode(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func escape(id string) string {
	return url.PathEscape(id)
}

// sessionJar is a cookie jar that can be emptied while requests are in flight.
type sessionJar struct {
	mu  sync.RWMutex
	jar http.CookieJar
}

func newSessionJar() (*sessionJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &sessionJar{jar: jar}, nil
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.jar.SetCookies(u, cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

func (j *sessionJar) reset() {
	fresh, _ := cookiejar.New(nil)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = fresh
}
