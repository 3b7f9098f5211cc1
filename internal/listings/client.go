// Package listings proxies tenant rental searches to the listing backend and
// normalizes its inconsistently shaped responses.
package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jacs_portal_backend/internal/filters"
	"jacs_portal_backend/platform/apperr"
	"jacs_portal_backend/platform/logger"
)

// Client calls the listing search backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		log:        log,
	}
}

// Search forwards the filter object as query parameters and returns the
// normalized result page.
func (c *Client) Search(ctx context.Context, f filters.Filters) (*Page, error) {
	reqURL := fmt.Sprintf("%s/properties/search?%s", c.baseURL, f.QueryValues().Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build search request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("listings", "search", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "listing search unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamError("listings", "search", fmt.Errorf("status %d", resp.StatusCode))
		return nil, apperr.Upstream("listing search failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.UpstreamError("listings", "search", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "listing search unavailable", err)
	}

	page, err := NormalizePage(json.RawMessage(body))
	if err != nil {
		c.log.UpstreamError("listings", "search", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "malformed listing search response", err)
	}

	return page, nil
}
