package properties

import "encoding/json"

// Request is the property create/update body from the manager app. The
// address arrives either as individual structured fields or as a single
// free-form line; both are accepted and normalized server-side.
type Request struct {
	Name        string  `json:"name" validate:"required"`
	Subdomain   string  `json:"subdomain"`
	Type        string  `json:"type" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`

	Street      string `json:"street"`
	Barangay    string `json:"barangay"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postalCode"`
	AddressLine string `json:"addressLine"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Payload is the flat body the property backend expects: the formatted
// display address and the structured fields together, plus coordinates.
type Payload struct {
	Name        string  `json:"name"`
	Subdomain   string  `json:"subdomain"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`

	Address    string `json:"address"`
	Street     string `json:"street"`
	Barangay   string `json:"barangay"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// upstreamError is the property backend's error body; either key may carry
// the message depending on endpoint version.
type upstreamError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e upstreamError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// Property is a property record as read back from the backend.
type Property struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Street    string   `json:"street"`
	Barangay  string   `json:"barangay"`
	City      string   `json:"city"`
	Province  string   `json:"province"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// propertyEnvelope covers the wrapped list variants; depending on endpoint
// version the backend returns {"items": [...]}, {"properties": [...]}, or a
// bare array.
type propertyEnvelope struct {
	Items      []Property `json:"items"`
	Properties []Property `json:"properties"`
}

func normalizeProperties(raw json.RawMessage) ([]Property, error) {
	for _, b := range raw {
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b == '[' {
			var items []Property
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
			return items, nil
		}
		break
	}

	var envelope propertyEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if envelope.Items != nil {
		return envelope.Items, nil
	}
	if envelope.Properties != nil {
		return envelope.Properties, nil
	}
	return []Property{}, nil
}
