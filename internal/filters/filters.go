// Package filters coordinates the tenant search filters: a debounced
// free-text query, the location picked on the map, and the type and
// price-range dropdowns, pushed upstream as one filter object.
package filters

import (
	"net/url"
	"strconv"
)

// LocationRadiusMeters is the fixed search radius applied whenever a location
// is set via map click or search-result selection.
const LocationRadiusMeters = 100

// Filters is the filter object shared with the listing search backend.
// Zero-valued fields are omitted from the encoded query.
type Filters struct {
	City      string   `form:"city" json:"city,omitempty"`
	Location  string   `form:"location" json:"location,omitempty"`
	Latitude  *float64 `form:"latitude" json:"latitude,omitempty"`
	Longitude *float64 `form:"longitude" json:"longitude,omitempty"`
	Radius    *int     `form:"radius" json:"radius,omitempty"`
	Type      string   `form:"type" json:"type,omitempty"`
	MinPrice  *float64 `form:"min_price" json:"min_price,omitempty"`
	MaxPrice  *float64 `form:"max_price" json:"max_price,omitempty"`
	Search    string   `form:"search" json:"search,omitempty"`
}

// HasLocation reports whether a location filter is set.
func (f Filters) HasLocation() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// QueryValues encodes the filters as listing backend query parameters,
// omitting unset fields.
func (f Filters) QueryValues() url.Values {
	params := url.Values{}

	if f.City != "" {
		params.Set("city", f.City)
	}
	if f.Location != "" {
		params.Set("location", f.Location)
	}
	if f.Latitude != nil {
		params.Set("latitude", strconv.FormatFloat(*f.Latitude, 'f', -1, 64))
	}
	if f.Longitude != nil {
		params.Set("longitude", strconv.FormatFloat(*f.Longitude, 'f', -1, 64))
	}
	if f.Radius != nil {
		params.Set("radius", strconv.Itoa(*f.Radius))
	}
	if f.Type != "" {
		params.Set("type", f.Type)
	}
	if f.MinPrice != nil {
		params.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		params.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}

	return params
}
