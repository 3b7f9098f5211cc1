package properties

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jacs_portal_backend/internal/session"
	"jacs_portal_backend/platform/apperr"
	"jacs_portal_backend/platform/logger"
)

// Client calls the property backend. The bearer token is taken from the
// per-call override when present, else from the injected session store (used
// by CLI tools running under a service account).
type Client struct {
	httpClient *http.Client
	baseURL    string
	sessions   session.Store
	log        *logger.Logger
}

func NewClient(baseURL string, sessions session.Store, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		sessions:   sessions,
		log:        log,
	}
}

// Create posts a new property.
func (c *Client) Create(ctx context.Context, payload Payload, token string) error {
	return c.send(ctx, http.MethodPost, c.baseURL+"/properties", payload, token, "create")
}

// Update replaces an existing property.
func (c *Client) Update(ctx context.Context, id string, payload Payload, token string) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("%s/properties/%s", c.baseURL, id), payload, token, "update")
}

// UpdateCoordinates patches only the coordinates of an existing property,
// leaving the rest of the record untouched. Used by the geocode backfill.
func (c *Client) UpdateCoordinates(ctx context.Context, id string, lat, lng float64) error {
	body, err := json.Marshal(map[string]float64{"latitude": lat, "longitude": lng})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode coordinates", err)
	}

	reqURL := fmt.Sprintf("%s/properties/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(body))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to build coordinates request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("properties", "update-coordinates", err)
		return apperr.Wrap(apperr.KindUpstream, "property service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.rejection(resp, "update-coordinates")
	}

	return nil
}

// List fetches a page of properties, normalized from whichever envelope the
// backend returns. Used by the geocode backfill tool.
func (c *Client) List(ctx context.Context, missingCoordinates bool, limit int) ([]Property, error) {
	reqURL := fmt.Sprintf("%s/properties?limit=%d", c.baseURL, limit)
	if missingCoordinates {
		reqURL += "&missing_coordinates=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build list request", err)
	}
	c.authorize(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("properties", "list", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "property service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, c.rejection(resp, "list")
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "malformed property list response", err)
	}

	return normalizeProperties(raw)
}

func (c *Client) send(ctx context.Context, method, reqURL string, payload Payload, token, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode property payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(body))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to build property request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("properties", operation, err)
		return apperr.Wrap(apperr.KindUpstream, "property service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.rejection(resp, operation)
	}

	return nil
}

// rejection surfaces the server-provided message when one can be decoded,
// else a generic failure string. The caller's widget state stays intact.
func (c *Client) rejection(resp *http.Response, operation string) error {
	c.log.UpstreamError("properties", operation, fmt.Errorf("status %d", resp.StatusCode))

	var upstream upstreamError
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err == nil && upstream.text() != "" {
		return apperr.Upstream(upstream.text())
	}

	return apperr.Upstream("the property service rejected the request")
}

func (c *Client) authorize(req *http.Request, override string) {
	token := override
	if token == "" && c.sessions != nil {
		if current, ok := c.sessions.Load(); ok {
			token = current.Token
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
