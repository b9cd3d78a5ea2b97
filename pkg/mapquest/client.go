package mapquest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ikkim/cafe-backend/pkg/logger"
)

// Client fetches static map images from MapQuest
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a MapQuest client. Requests have no timeout; a hanging
// provider stalls the caller until ctx is cancelled.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config:     config.withDefaults(),
		httpClient: &http.Client{},
	}, nil
}

// WithHTTPClient swaps the transport, mainly for tests
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// Location formats the address the way MapQuest expects it
func Location(address, city, state string) string {
	return fmt.Sprintf("%s,%s,%s", address, city, state)
}

// StaticMapURL builds the request URL for a map centered on the address with
// a marker on it.
func (c *Client) StaticMapURL(address, city, state string) string {
	where := Location(address, city, state)

	params := url.Values{}
	params.Set("key", c.config.APIKey)
	params.Set("center", where)
	params.Set("size", c.config.Size)
	params.Set("zoom", strconv.Itoa(c.config.Zoom))
	params.Set("locations", where)

	return fmt.Sprintf("%s?%s", c.config.BaseURL, params.Encode())
}

// FetchStaticMap downloads the map image for the address. The body is
// returned as-is; content type and size are not checked.
func (c *Client) FetchStaticMap(ctx context.Context, address, city, state string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StaticMapURL(address, city, state), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call MapQuest API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("MapQuest returned non-OK status", map[string]interface{}{
			"status_code": resp.StatusCode,
			"location":    Location(address, city, state),
			"body_size":   len(body),
		})
	}

	return body, nil
}
