package filters

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"jacs_portal_backend/internal/geocode"
	"jacs_portal_backend/platform/apperr"
)

// debounceDelay is how long free-text input must be quiet before the upstream
// OnChange fires. Location, type, and price changes are discrete actions and
// bypass it.
const debounceDelay = 300 * time.Millisecond

// OnChange receives the settled filter object. It is expected to be wired to
// a listing search request.
type OnChange func(Filters)

// Controller owns the tenant-search filter state. Free-text keystrokes update
// local state synchronously and reach OnChange only after the debounce delay;
// an explicit submit fires immediately. All methods are safe for concurrent
// use, and no OnChange is delivered after Close returns.
type Controller struct {
	mu       sync.Mutex
	onChange OnChange

	filters    Filters
	searchText string

	minDraft   string
	maxDraft   string
	priceError string

	timer *time.Timer

	// closed is checked again under notifyMu so a flush that raced Close
	// cannot deliver after Close returns.
	closed   atomic.Bool
	notifyMu sync.Mutex
}

// NewController creates a controller pushing settled filters to onChange.
func NewController(onChange OnChange) *Controller {
	return &Controller{onChange: onChange}
}

// Filters returns a copy of the current settled filter object.
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SearchText returns the local echo of the free-text box.
func (c *Controller) SearchText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchText
}

// SetSearchText records a keystroke. The local value updates synchronously;
// the upstream push is delayed until input pauses, with the pending timer
// cancelled and restarted on each call.
func (c *Controller) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() {
		return
	}

	c.searchText = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(debounceDelay, c.flushSearch)
}

// SubmitSearch pushes the current text immediately, bypassing the debounce.
// An explicit submit intent is not subject to artificial delay.
func (c *Controller) SubmitSearch() {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.filters.Search = strings.TrimSpace(c.searchText)
	snapshot := c.filters
	c.mu.Unlock()

	c.notify(snapshot)
}

func (c *Controller) flushSearch() {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.filters.Search = strings.TrimSpace(c.searchText)
	snapshot := c.filters
	c.mu.Unlock()

	c.notify(snapshot)
}

// SetType applies the property type filter immediately; the type dropdown has
// no separate apply step.
func (c *Controller) SetType(propertyType string) {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	c.filters.Type = propertyType
	snapshot := c.filters
	c.mu.Unlock()

	c.notify(snapshot)
}

// SetMinPrice updates the min-price draft. Values are constrained as typed:
// only the empty string or a valid non-negative number is accepted.
func (c *Controller) SetMinPrice(value string) error {
	return c.setPriceDraft(value, &c.minDraft)
}

// SetMaxPrice updates the max-price draft under the same input constraint.
func (c *Controller) SetMaxPrice(value string) error {
	return c.setPriceDraft(value, &c.maxDraft)
}

func (c *Controller) setPriceDraft(value string, dst *string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" {
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || parsed < 0 {
			return apperr.Validation("price must be a non-negative number")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() {
		return nil
	}
	*dst = trimmed
	c.priceError = ""
	return nil
}

// ApplyPrice validates the drafted price range and pushes it upstream. Both
// bounds are optional; when both are present min must not exceed max, and a
// violation blocks the apply with an inline message instead of calling
// OnChange.
func (c *Controller) ApplyPrice() error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return nil
	}

	var minPrice, maxPrice *float64
	if c.minDraft != "" {
		v, _ := strconv.ParseFloat(c.minDraft, 64)
		minPrice = &v
	}
	if c.maxDraft != "" {
		v, _ := strconv.ParseFloat(c.maxDraft, 64)
		maxPrice = &v
	}

	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		c.priceError = "minimum price cannot exceed maximum price"
		c.mu.Unlock()
		return apperr.Validation(c.priceError)
	}

	c.priceError = ""
	c.filters.MinPrice = minPrice
	c.filters.MaxPrice = maxPrice
	snapshot := c.filters
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

// PriceError returns the inline price validation message, if any.
func (c *Controller) PriceError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.priceError
}

// SetLocation applies a picked location immediately (no debounce; selecting
// or clearing a pin is a discrete action). The fixed radius accompanies every
// set location.
func (c *Controller) SetLocation(city, label string, coord geocode.Coordinate) {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	lat, lng, radius := coord.Latitude, coord.Longitude, LocationRadiusMeters
	c.filters.City = city
	c.filters.Location = label
	c.filters.Latitude = &lat
	c.filters.Longitude = &lng
	c.filters.Radius = &radius
	snapshot := c.filters
	c.mu.Unlock()

	c.notify(snapshot)
}

// ClearLocation removes the location filter keys and pushes immediately.
func (c *Controller) ClearLocation() {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	c.filters.City = ""
	c.filters.Location = ""
	c.filters.Latitude = nil
	c.filters.Longitude = nil
	c.filters.Radius = nil
	snapshot := c.filters
	c.mu.Unlock()

	c.notify(snapshot)
}

// Close stops any pending debounce. No OnChange is delivered after Close
// returns: the closed flag is set first, and the notify barrier waits out any
// delivery already in progress.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed.Store(true)
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	// Barrier: wait out a delivery already holding notifyMu.
	c.notifyMu.Lock()
	c.notifyMu.Unlock() //nolint:staticcheck
}

func (c *Controller) notify(snapshot Filters) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if c.closed.Load() || c.onChange == nil {
		return
	}
	c.onChange(snapshot)
}
