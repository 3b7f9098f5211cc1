// Package properties proxies property create/update calls to the property
// backend, composing the dual human-readable plus structured address payload
// the backend expects.
package properties

import (
	"context"

	"jacs_portal_backend/internal/address"
	"jacs_portal_backend/internal/geocode"
	"jacs_portal_backend/platform/apperr"
	"jacs_portal_backend/platform/validator"
)

// Geocoder fills coordinates for submissions that never touched the map.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, query string, opts geocode.Options) []geocode.Result
}

// Service builds upstream payloads and forwards them.
type Service struct {
	client   *Client
	geocoder Geocoder
	defaults address.Defaults
	validate *validator.Validator
}

func NewService(client *Client, geocoder Geocoder, defaults address.Defaults, validate *validator.Validator) *Service {
	return &Service{client: client, geocoder: geocoder, defaults: defaults, validate: validate}
}

// Create composes the payload and creates the property upstream, attaching
// the caller's bearer token.
func (s *Service) Create(ctx context.Context, req Request, token string) (*Payload, error) {
	payload, err := s.buildPayload(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.client.Create(ctx, *payload, token); err != nil {
		return nil, err
	}

	return payload, nil
}

// Update composes the payload and updates the property upstream.
func (s *Service) Update(ctx context.Context, id string, req Request, token string) (*Payload, error) {
	payload, err := s.buildPayload(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.client.Update(ctx, id, *payload, token); err != nil {
		return nil, err
	}

	return payload, nil
}

// buildPayload normalizes whichever address shape the form sent, formats the
// display string, and fills missing coordinates with one forward geocode.
// Submission requires a complete address: a free-form line alone is accepted
// because parsing folds it into the street field and defaults the locality.
func (s *Service) buildPayload(ctx context.Context, req Request) (*Payload, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid property payload", err)
	}

	var raw address.RawAddress
	switch {
	case req.Street != "" || req.Barangay != "" || req.City != "" || req.Province != "" || req.PostalCode != "":
		raw = address.Structured{
			Street:     req.Street,
			Barangay:   req.Barangay,
			City:       req.City,
			Province:   req.Province,
			PostalCode: req.PostalCode,
		}
	case req.AddressLine != "":
		raw = address.DisplayString(req.AddressLine)
	default:
		return nil, apperr.Validation("an address is required")
	}

	structured := address.Parse(raw, s.defaults)
	formatted := address.FormatString(structured)

	lat, lng := req.Latitude, req.Longitude
	if lat != nil && lng != nil {
		coord := geocode.Coordinate{Latitude: *lat, Longitude: *lng}
		if !coord.Valid() {
			return nil, apperr.Validation("coordinate out of range")
		}
	} else {
		// No pin was placed; best effort from the formatted address. A
		// property without coordinates is still accepted.
		if results := s.geocoder.ForwardGeocode(ctx, formatted, geocode.Options{}); len(results) > 0 {
			latV := results[0].Coordinate.Latitude
			lngV := results[0].Coordinate.Longitude
			lat, lng = &latV, &lngV
		} else {
			lat, lng = nil, nil
		}
	}

	return &Payload{
		Name:        req.Name,
		Subdomain:   address.NormalizeSubdomain(req.Subdomain),
		Type:        req.Type,
		Description: req.Description,
		Price:       req.Price,
		Address:     formatted,
		Street:      structured.Street,
		Barangay:    structured.Barangay,
		City:        structured.City,
		Province:    structured.Province,
		PostalCode:  structured.PostalCode,
		Latitude:    lat,
		Longitude:   lng,
	}, nil
}
