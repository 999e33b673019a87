// Package transport provides the shared HTTP client for source adapters.
// Every remote source goes through it, so headers and timeouts stay
// consistent across adapters.
package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sdkmap/sdkmap/pkg/constants"
	"github.com/sdkmap/sdkmap/pkg/errors"
)

// Apple's support pages and Wikipedia both serve reduced content to unknown
// agents, so requests present a browser profile.
const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"
)

// Client performs HTTP requests for source adapters.
type Client struct {
	http *http.Client
}

// New creates a transport client with the default timeout.
func New() *Client {
	return NewWithTimeout(constants.DefaultHTTPTimeout)
}

// NewWithTimeout creates a transport client with an explicit timeout.
func NewWithTimeout(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request with the shared headers applied.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapAPI("transport", 0, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	return c.http.Do(req)
}

// GetBody performs a GET request and returns the response body, requiring a
// 200 status. The body is fully drained so connections can be reused.
func (c *Client) GetBody(ctx context.Context, source, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, errors.WrapAPI(source, 0, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // draining for reuse
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Endpoint:   url,
			Message:    "unexpected status",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", url, err)
	}
	return body, nil
}
