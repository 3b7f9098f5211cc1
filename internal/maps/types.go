package maps

// LookupRequest represents the forward lookup query parameters from the frontend.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// ReverseRequest represents the reverse lookup query parameters. Pointer
// fields distinguish "absent" from the valid zero coordinate.
type ReverseRequest struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lon *float64 `form:"lon" binding:"required"`
}

// Suggestion is the normalized address data returned to the frontend widgets.
type Suggestion struct {
	Label      string  `json:"label"`
	Street     string  `json:"street"`
	Barangay   string  `json:"barangay"`
	City       string  `json:"city"`
	Province   string  `json:"province"`
	PostalCode string  `json:"postalCode"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}
