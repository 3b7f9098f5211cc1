package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jacs_portal_backend/platform/config"
	"jacs_portal_backend/platform/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		GeocoderBaseURL:      server.URL,
		GeocoderUserAgent:    "TestAgent/1.0",
		GeocoderCountryCodes: "ph",
		GeocoderResultLimit:  5,
		GeocoderTimeout:      2 * time.Second,
	}
	return NewClient(cfg, logger.New("test"))
}

func TestReverseGeocode_ReturnsInputCoordinate(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "TestAgent/1.0" {
			t.Errorf("expected identifying user agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		// The provider snaps to the nearest feature; its coordinate differs
		// from the one we asked about.
		_, _ = w.Write([]byte(`{
			"display_name": "Osmena Blvd, Cebu City, Cebu, Philippines",
			"lat": "10.3099",
			"lon": "123.8911",
			"address": {
				"road": "Osmena Blvd",
				"suburb": "Capitol Site",
				"city": "Cebu City",
				"state": "Cebu",
				"postcode": "6000"
			}
		}`))
	})

	coord := Coordinate{Latitude: 10.3157, Longitude: 123.8854}
	result := client.ReverseGeocode(context.Background(), coord)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Coordinate != coord {
		t.Fatalf("expected input coordinate %+v to be preserved, got %+v", coord, result.Coordinate)
	}
	if result.Address.Street != "Osmena Blvd" {
		t.Errorf("expected street from road, got %q", result.Address.Street)
	}
	if result.Address.Barangay != "Capitol Site" {
		t.Errorf("expected barangay from suburb, got %q", result.Address.Barangay)
	}
	if result.Address.City != "Cebu City" || result.Address.Province != "Cebu" {
		t.Errorf("unexpected locality: %+v", result.Address)
	}
}

func TestReverseGeocode_InvalidCoordinateSkipsProvider(t *testing.T) {
	called := false
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if result := client.ReverseGeocode(context.Background(), Coordinate{Latitude: 91}); result != nil {
		t.Fatalf("expected nil for out-of-range coordinate, got %+v", result)
	}
	if called {
		t.Fatal("provider should not be called for invalid coordinates")
	}
}

func TestReverseGeocode_ErrorPayloadYieldsNil(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	})

	coord := Coordinate{Latitude: 0, Longitude: 0}
	if result := client.ReverseGeocode(context.Background(), coord); result != nil {
		t.Fatalf("expected nil on provider error payload, got %+v", result)
	}
}

func TestReverseGeocode_ServerErrorYieldsNil(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	coord := Coordinate{Latitude: 10.3157, Longitude: 123.8854}
	if result := client.ReverseGeocode(context.Background(), coord); result != nil {
		t.Fatalf("expected nil on 500, got %+v", result)
	}
}

func TestForwardGeocode_ReturnsProviderOrder(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("countrycodes"); got != "ph" {
			t.Errorf("expected default country filter, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name": "First", "lat": "10.1", "lon": "123.1", "address": {"city": "Cebu City"}},
			{"display_name": "Second", "lat": "10.2", "lon": "123.2", "address": {"town": "Minglanilla"}}
		]`))
	})

	results := client.ForwardGeocode(context.Background(), "Osmena Blvd", Options{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].DisplayName != "First" || results[1].DisplayName != "Second" {
		t.Fatalf("provider order not preserved: %+v", results)
	}
	if results[1].Address.City != "Minglanilla" {
		t.Errorf("expected town to map to city, got %q", results[1].Address.City)
	}
}

func TestForwardGeocode_CapsAtConfiguredLimit(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name": "1", "lat": "10.1", "lon": "123.1"},
			{"display_name": "2", "lat": "10.2", "lon": "123.2"},
			{"display_name": "3", "lat": "10.3", "lon": "123.3"},
			{"display_name": "4", "lat": "10.4", "lon": "123.4"},
			{"display_name": "5", "lat": "10.5", "lon": "123.5"},
			{"display_name": "6", "lat": "10.6", "lon": "123.6"},
			{"display_name": "7", "lat": "10.7", "lon": "123.7"}
		]`))
	})

	results := client.ForwardGeocode(context.Background(), "Cebu", Options{})
	if len(results) != 5 {
		t.Fatalf("expected limit of 5 results, got %d", len(results))
	}
}

func TestForwardGeocode_SkipsUnparsableCoordinates(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name": "Broken", "lat": "not-a-number", "lon": "123.1"},
			{"display_name": "Good", "lat": "10.2", "lon": "123.2"}
		]`))
	})

	results := client.ForwardGeocode(context.Background(), "Cebu", Options{})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].DisplayName != "Good" {
		t.Fatalf("expected the parsable entry, got %+v", results[0])
	}
}

func TestForwardGeocode_EmptyQueryIsNoop(t *testing.T) {
	called := false
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if results := client.ForwardGeocode(context.Background(), "", Options{}); results != nil {
		t.Fatalf("expected nil for empty query, got %+v", results)
	}
	if called {
		t.Fatal("provider should not be called for an empty query")
	}
}

func TestForwardGeocode_MalformedBodyYieldsEmpty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	if results := client.ForwardGeocode(context.Background(), "Cebu", Options{}); len(results) != 0 {
		t.Fatalf("expected no results on malformed body, got %+v", results)
	}
}
