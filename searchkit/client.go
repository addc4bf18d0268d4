package searchkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
)

// Client calls the clinic backend's search and list endpoints. Transient
// failures (network errors, 5xx) on the search path are retried with
// exponential backoff, since search is the interactively critical path.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retries    uint64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxRetries sets the transient-failure retry budget.
func WithMaxRetries(n uint64) ClientOption {
	return func(c *Client) { c.retries = n }
}

// NewClient creates a backend client. The token is sent as a bearer
// credential on every request.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retries:    2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx backend reply.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return retry.RetryableError(&APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) getWithRetry(ctx context.Context, path string, query url.Values, dest interface{}) error {
	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(250*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.get(ctx, path, query, dest)
	})
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return "unexpected response"
	}
	if payload.Error == "" {
		return "unexpected response"
	}
	return payload.Error
}

// SearchGlobal runs a global search. A limit of zero lets the backend pick
// its default per-category limit.
func (c *Client) SearchGlobal(ctx context.Context, q string, limit int) (*SearchResponse, error) {
	query := url.Values{"q": {q}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var response SearchResponse
	if err := c.getWithRetry(ctx, "/api/v1/search/global", query, &response); err != nil {
		return nil, err
	}
	if response.Results == nil {
		response.Results = NewResultSet()
	}
	return &response, nil
}

// RecentSearches returns the server-side recent queries for the caller.
func (c *Client) RecentSearches(ctx context.Context) ([]string, error) {
	var response struct {
		Items []string `json:"items"`
	}
	if err := c.getWithRetry(ctx, "/api/v1/search/recent", nil, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// ListPage is the decoded shape of a list endpoint reply.
type ListPage struct {
	Items json.RawMessage
	Total int
	// HasEnvelope reports whether the backend sent a paginated envelope.
	// Bare-array replies carry no total; Total then equals the item count.
	HasEnvelope bool
}

// FetchList calls a list endpoint and decodes either the standard
// {items,total,...} envelope or a bare JSON array.
func (c *Client) FetchList(ctx context.Context, path string, query url.Values) (*ListPage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	return DecodeListPayload(raw)
}

// DecodeListPayload interprets a list reply in either supported shape.
func DecodeListPayload(raw json.RawMessage) (*ListPage, error) {
	trimmed := firstNonSpace(raw)
	if trimmed == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode list array: %w", err)
		}
		return &ListPage{Items: raw, Total: len(items), HasEnvelope: false}, nil
	}

	var envelope struct {
		Items json.RawMessage `json:"items"`
		Total int             `json:"total"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	if envelope.Items == nil {
		envelope.Items = json.RawMessage("[]")
	}
	return &ListPage{Items: envelope.Items, Total: envelope.Total, HasEnvelope: true}, nil
}

func firstNonSpace(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
