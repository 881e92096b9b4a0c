// Package bangumi implements the remote subject source backed by the
// bgm.tv v0 API.
package bangumi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/xtz206/acgnx/internal/subject"
)

const (
	// BaseURL is the bgm.tv v0 API base URL.
	BaseURL = "https://api.bgm.tv/v0"

	// UserAgent identifies this client in every request, as required by the
	// bgm.tv API guidelines.
	UserAgent = "xtz206/acgnx/0.1.0 (https://github.com/xtz206/acgnx)"

	// SearchLimit is the provider page size used for search calls.
	SearchLimit = 10

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// TokenEnvVar names the environment variable holding an optional
	// bgm.tv access token.
	TokenEnvVar = "BGM_TOKEN"
)

// Client talks to the bgm.tv v0 API. It issues exactly one request per call,
// with no retries and no client-side rate limiting; failures surface as
// subject.ErrSourceUnavailable.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithToken sets the access token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new bgm.tv API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}

	// Check for an access token in the environment
	if token := os.Getenv(TokenEnvVar); token != "" {
		c.token = token
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do issues one request and returns the response, mapping transport
// failures to subject.ErrSourceUnavailable.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", subject.ErrSourceUnavailable, err)
	}
	return resp, nil
}

// FetchSubject fetches one subject by ID. A provider 404 yields
// subject.NotFoundError; any other non-success response is reported as
// source unavailability without interpreting the body.
func (c *Client) FetchSubject(ctx context.Context, id int) (*subject.Subject, error) {
	url := fmt.Sprintf("%s/subjects/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &subject.NotFoundError{ID: id, Source: "bgm.tv"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: bgm.tv returned status %d", subject.ErrSourceUnavailable, resp.StatusCode)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: parsing subject %d: %v", subject.ErrMalformed, id, err)
	}

	return SubjectFromDocument(doc)
}

// SearchSubjects searches subjects by keyword, bounded to the provider's
// page size and ordered by provider relevance.
func (c *Client) SearchSubjects(ctx context.Context, keyword string) ([]subject.Subject, error) {
	body, err := json.Marshal(searchRequest{Keyword: keyword})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	url := fmt.Sprintf("%s/search/subjects?limit=%d&offset=0", c.baseURL, SearchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: bgm.tv returned status %d", subject.ErrSourceUnavailable, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: parsing search results: %v", subject.ErrMalformed, err)
	}

	subjects := make([]subject.Subject, 0, len(sr.Data))
	for _, doc := range sr.Data {
		s, err := SubjectFromDocument(doc)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *s)
	}

	return subjects, nil
}
