package geocode

import "jacs_portal_backend/internal/address"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is within range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Result is one normalized geocoding outcome. Address holds only the fields
// the provider actually returned; absent fields are empty.
type Result struct {
	DisplayName string
	Address     address.ProviderBreakdown
	Coordinate  Coordinate
}

// Options narrows a forward geocode search.
type Options struct {
	// CountryCodes restricts results to a comma-separated ISO country list.
	// Empty means the client default.
	CountryCodes string
}

type nominatimAddress struct {
	Road          string `json:"road"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	Village       string `json:"village"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Municipality  string `json:"municipality"`
	Hamlet        string `json:"hamlet"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
}

// nominatimPlace mirrors the relevant parts of the OSM search payload.
type nominatimPlace struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
	ErrorMsg    string           `json:"error"`
}

func (p nominatimPlace) breakdown() address.ProviderBreakdown {
	return address.ProviderBreakdown{
		Street:     p.Address.Road,
		Barangay:   pickBarangay(p.Address),
		City:       pickCity(p.Address),
		Province:   p.Address.State,
		PostalCode: p.Address.Postcode,
	}
}

func (p nominatimPlace) empty() bool {
	return p.breakdown() == (address.ProviderBreakdown{}) && p.DisplayName == ""
}

func pickBarangay(a nominatimAddress) string {
	if a.Suburb != "" {
		return a.Suburb
	}
	if a.Neighbourhood != "" {
		return a.Neighbourhood
	}
	return a.Village
}

func pickCity(a nominatimAddress) string {
	if a.City != "" {
		return a.City
	}
	if a.Town != "" {
		return a.Town
	}
	if a.Municipality != "" {
		return a.Municipality
	}
	return a.Hamlet
}
