// Package geocode wraps the external geocoding provider behind forward and
// reverse lookup operations with normalized results.
//
// Both operations swallow provider failures: network errors, non-2xx
// responses, and malformed payloads are logged and collapsed into the same
// nil/empty outcomes as a true no-match. Callers keep whatever coordinate or
// address state they already hold and decide how to present "no result".
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jacs_portal_backend/platform/config"
	"jacs_portal_backend/platform/logger"

	"golang.org/x/time/rate"
)

// Client issues requests against a Nominatim-compatible provider.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	countryCodes string
	limit        int
	limiter      *rate.Limiter
	log          *logger.Logger
}

// NewClient creates a geocoding client from configuration. The limiter keeps
// outbound traffic within the provider's one-request-per-second usage policy
// regardless of how many widgets are active.
func NewClient(cfg config.GeocoderConfig, log *logger.Logger) *Client {
	timeout := cfg.GetGeocoderTimeout()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      cfg.GetGeocoderBaseURL(),
		userAgent:    cfg.GetGeocoderUserAgent(),
		countryCodes: cfg.GetGeocoderCountryCodes(),
		limit:        cfg.GetGeocoderResultLimit(),
		limiter:      rate.NewLimiter(rate.Limit(1), 1),
		log:          log,
	}
}

// ReverseGeocode resolves a coordinate to a single result, or nil when the
// provider cannot resolve it (for any reason). The returned result carries the
// input coordinate, not the provider's, so the pin never drifts.
func (c *Client) ReverseGeocode(ctx context.Context, coord Coordinate) *Result {
	if !coord.Valid() {
		return nil
	}

	query := fmt.Sprintf("%.6f,%.6f", coord.Latitude, coord.Longitude)
	start := time.Now()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))

	var place nominatimPlace
	if err := c.fetch(ctx, "/reverse", params, &place); err != nil {
		c.log.GeocodeFailure("reverse", query, err)
		return nil
	}

	if place.ErrorMsg != "" || place.empty() {
		c.log.GeocodeLookup("reverse", query, 0, float64(time.Since(start).Milliseconds()))
		return nil
	}

	c.log.GeocodeLookup("reverse", query, 1, float64(time.Since(start).Milliseconds()))
	return &Result{
		DisplayName: place.DisplayName,
		Address:     place.breakdown(),
		Coordinate:  coord,
	}
}

// ForwardGeocode resolves free text to candidate results in provider relevance
// order, capped at the configured limit. Failures yield an empty slice.
func (c *Client) ForwardGeocode(ctx context.Context, query string, opts Options) []Result {
	if query == "" {
		return nil
	}

	start := time.Now()

	countries := opts.CountryCodes
	if countries == "" {
		countries = c.countryCodes
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.limit))
	if countries != "" {
		params.Set("countrycodes", countries)
	}

	var places []nominatimPlace
	if err := c.fetch(ctx, "/search", params, &places); err != nil {
		c.log.GeocodeFailure("forward", query, err)
		return nil
	}

	results := make([]Result, 0, len(places))
	for _, place := range places {
		lat, latErr := strconv.ParseFloat(place.Lat, 64)
		lon, lonErr := strconv.ParseFloat(place.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		results = append(results, Result{
			DisplayName: place.DisplayName,
			Address:     place.breakdown(),
			Coordinate:  Coordinate{Latitude: lat, Longitude: lon},
		})
		if len(results) == c.limit {
			break
		}
	}

	c.log.GeocodeLookup("forward", query, len(results), float64(time.Since(start).Milliseconds()))
	return results
}

// fetch performs one rate-limited GET against the provider. Each call is a
// single outbound request: no retries, no caching.
func (c *Client) fetch(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	// Required by the provider's usage policy.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
