// Package api is the authenticated client for the chat backend's private
// API. It owns retrieval and raw-to-typed conversion; everything derived
// happens downstream in the aggregator.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/yaozhiwang/chatgpt-sugar/internal/data/batch"
	"github.com/yaozhiwang/chatgpt-sugar/internal/data/cache"
)

const (
	DefaultBaseURL    = "https://chatgpt.com/backend-api"
	DefaultSessionURL = "https://chatgpt.com/api/auth/session"

	pageSize = 50
)

// Client talks to the backend API. The bearer token is fetched lazily from
// the session endpoint on first use and cached for the client's lifetime;
// it is never refreshed, so an expired token surfaces as per-request
// authentication failures.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sessionURL string
	batchOpts  batch.Options
	bodyCache  *cache.FileCache

	mu          sync.Mutex
	accessToken string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different backend root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithSessionURL points the token bootstrap at a different session endpoint.
func WithSessionURL(u string) Option {
	return func(c *Client) { c.sessionURL = u }
}

// WithAccessToken injects a pre-obtained bearer token, skipping the session
// endpoint entirely. Useful for tests and concurrent sessions.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

// WithBatchOptions tunes the batch executor used for paginated fetches.
func WithBatchOptions(opts batch.Options) Option {
	return func(c *Client) { c.batchOpts = opts }
}

// WithCache stores fetched conversation bodies on disk, keyed by id and
// validated against the listing's update time.
func WithCache(fc *cache.FileCache) Option {
	return func(c *Client) { c.bodyCache = fc }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    DefaultBaseURL,
		sessionURL: DefaultSessionURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sessionResponse struct {
	AccessToken string `json:"accessToken"`
}

// token returns the cached bearer token, fetching it once if needed.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sessionURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create session request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", ErrBotCheck
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read session response: %w", err)
	}

	var session sessionResponse
	// A non-JSON body means no session; fall through to the token check.
	_ = sonic.Unmarshal(body, &session)
	if session.AccessToken == "" {
		return "", ErrUnauthorized
	}

	c.accessToken = session.AccessToken
	log.Debug().Msg("obtained access token from session endpoint")
	return c.accessToken, nil
}

// get performs an authenticated GET on a data endpoint and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
