// Package databricks is a thin typed client for the Databricks workspace
// REST APIs used by the tool surface: clusters, jobs, workspace objects,
// repos, secrets, SQL execution, and Unity Catalog.
package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultRequestTimeout = 60 * time.Second

// APIError is a non-2xx response from the Databricks REST API.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("databricks api: %s: %s (http %d)", e.ErrorCode, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("databricks api: %s (http %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client issues authenticated requests to one Databricks workspace.
type Client struct {
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger
	maxRetry   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMaxRetryElapsed caps how long transient failures are retried.
func WithMaxRetryElapsed(d time.Duration) Option {
	return func(c *Client) { c.maxRetry = d }
}

// NewClient creates a client for the workspace identified by creds.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if !creds.Valid() {
		return nil, ErrNoCredentials
	}
	creds.Host = NormalizeHost(creds.Host)

	c := &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     slog.Default(),
		maxRetry:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Host returns the normalized workspace host.
func (c *Client) Host() string {
	return c.creds.Host
}

// do sends one API request, retrying on 429 and 5xx responses with
// exponential backoff. out, when non-nil, receives the decoded JSON body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	endpoint := c.creds.Host + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out != nil && len(respBody) > 0 {
				if err := json.Unmarshal(respBody, out); err != nil {
					return backoff.Permanent(fmt.Errorf("decode response: %w", err))
				}
			}
			return nil
		}

		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			c.logger.DebugContext(ctx, "retrying databricks request",
				"method", method, "path", path, "status", resp.StatusCode)
			return apiErr
		}
		return backoff.Permanent(error(apiErr))
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.maxRetry
	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}
