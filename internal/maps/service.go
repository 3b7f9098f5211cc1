package maps

import (
	"context"

	"jacs_portal_backend/internal/geocode"
)

// Geocoder is the lookup surface the maps module needs.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, coord geocode.Coordinate) *geocode.Result
	ForwardGeocode(ctx context.Context, query string, opts geocode.Options) []geocode.Result
}

// Service turns geocoding results into frontend suggestions.
type Service struct {
	geocoder Geocoder
}

func NewService(geocoder Geocoder) *Service {
	return &Service{geocoder: geocoder}
}

// SearchAddress forward geocodes free text into suggestions, in provider
// relevance order. An empty slice means no match (or a swallowed provider
// failure; the two are not distinguished).
func (s *Service) SearchAddress(ctx context.Context, query string) []Suggestion {
	results := s.geocoder.ForwardGeocode(ctx, query, geocode.Options{})

	suggestions := make([]Suggestion, 0, len(results))
	for _, result := range results {
		suggestions = append(suggestions, buildSuggestion(result))
	}

	return suggestions
}

// ReverseAddress resolves a coordinate to a single suggestion, or nil when
// the provider cannot resolve it.
func (s *Service) ReverseAddress(ctx context.Context, coord geocode.Coordinate) *Suggestion {
	result := s.geocoder.ReverseGeocode(ctx, coord)
	if result == nil {
		return nil
	}

	suggestion := buildSuggestion(*result)
	return &suggestion
}

func buildSuggestion(result geocode.Result) Suggestion {
	return Suggestion{
		Label:      result.DisplayName,
		Street:     result.Address.Street,
		Barangay:   result.Address.Barangay,
		City:       result.Address.City,
		Province:   result.Address.Province,
		PostalCode: result.Address.PostalCode,
		Latitude:   result.Coordinate.Latitude,
		Longitude:  result.Coordinate.Longitude,
	}
}
