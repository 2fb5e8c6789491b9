package aircall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL   = "https://api.aircall.io/v1"
	defaultTimeout   = 30 * time.Second
	defaultPageSize  = 50
	defaultUserAgent = "aircall-api-go/" + Version
)

// Client is the Aircall API client. It owns the credentials and the single
// shared HTTP client used by every resource service.
//
// A Client is safe for concurrent use by multiple goroutines; no per-call
// mutable state is retained.
type Client struct {
	baseURL    string
	apiID      string
	apiToken   string
	userAgent  string
	pageSize   int
	verbose    bool
	httpClient *http.Client
	logger     zerolog.Logger

	// Resource services, all sharing this client's transport.
	Calls         *CallsService
	Contacts      *ContactsService
	Numbers       *NumbersService
	Users         *UsersService
	Teams         *TeamsService
	Tags          *TagsService
	Webhooks      *WebhooksService
	AIVoiceAgents *AIVoiceAgentsService
}

// NewClient creates a new Aircall client authenticated with the given API ID
// and token. Construction validates the credentials but performs no network
// call; use Ping to verify connectivity.
func NewClient(apiID, apiToken string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiID == "" {
		return nil, &ConfigurationError{Message: "API ID is required"}
	}
	if apiToken == "" {
		return nil, &ConfigurationError{Message: "API token is required"}
	}

	c := &Client{
		baseURL:    defaultBaseURL,
		apiID:      apiID,
		apiToken:   apiToken,
		userAgent:  defaultUserAgent,
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure baseURL doesn't have trailing slash
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	c.Calls = &CallsService{client: c}
	c.Contacts = &ContactsService{client: c}
	c.Numbers = &NumbersService{client: c}
	c.Users = &UsersService{client: c}
	c.Teams = &TeamsService{client: c}
	c.Tags = &TagsService{client: c}
	c.Webhooks = &WebhooksService{client: c}
	c.AIVoiceAgents = &AIVoiceAgentsService{client: c}

	return c, nil
}

// Ping verifies connectivity and credentials against the API.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Ping string `json:"ping"`
	}
	if err := c.do(ctx, http.MethodGet, "ping", nil, nil, &out); err != nil {
		return err
	}
	if out.Ping != "pong" {
		return &DecodeError{Resource: "ping", Err: fmt.Errorf("unexpected ping response %q", out.Ping)}
	}
	return nil
}

// do issues one request and decodes the 2xx response body into out when out
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	raw, _, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Resource: path, Err: err}
	}
	return nil
}

// doRaw performs a single authenticated request/response cycle. It returns
// the raw body of a 2xx response; a well-formed non-2xx response comes back
// as a typed error from classify, a network failure as a TransportError.
// Per-call timeouts are applied through the context deadline.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, http.Header, error) {
	requestURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.apiID, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Op: method, URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: method, URL: requestURL, Err: err}
	}

	if c.verbose {
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Msg("aircall API request")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, classify(resp.StatusCode, raw, resp.Header)
	}

	return raw, resp.Header, nil
}

// fetchOne fetches or mutates a single record wrapped under its envelope key
// and validates it before returning.
func fetchOne[T any](ctx context.Context, c *Client, method, path string, query url.Values, body interface{}, key string) (*T, error) {
	raw, _, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &DecodeError{Resource: key, Err: err}
	}

	data, ok := envelope[key]
	if !ok {
		return nil, &DecodeError{Resource: key, Err: fmt.Errorf("response missing %q object", key)}
	}

	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &DecodeError{Resource: key, Err: err}
	}
	if err := validateRecord(&record); err != nil {
		return nil, &DecodeError{Resource: key, Err: err}
	}

	return &record, nil
}

// validateRecord runs the record's required-field check when it declares one.
func validateRecord(record interface{}) error {
	if v, ok := record.(interface{ validate() error }); ok {
		return v.validate()
	}
	return nil
}
