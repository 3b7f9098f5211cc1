package maps

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jacs_portal_backend/internal/address"
	"jacs_portal_backend/internal/geocode"

	"github.com/gin-gonic/gin"
)

func mapsRouter(fake *fakeGeocoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(fake))

	engine := gin.New()
	engine.GET("/maps/address-lookup", handler.LookupAddress)
	engine.GET("/maps/reverse-lookup", handler.ReverseLookup)
	return engine
}

func TestLookupAddress_RequiresMinimumQuery(t *testing.T) {
	engine := mapsRouter(&fakeGeocoder{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/maps/address-lookup?q=ab", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short query, got %d", rec.Code)
	}
}

func TestLookupAddress_ReturnsSuggestions(t *testing.T) {
	engine := mapsRouter(&fakeGeocoder{
		forward: []geocode.Result{
			{
				DisplayName: "Osmena Blvd, Cebu City",
				Address:     address.ProviderBreakdown{Street: "Osmena Blvd", City: "Cebu City"},
				Coordinate:  geocode.Coordinate{Latitude: 10.31, Longitude: 123.89},
			},
		},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/maps/address-lookup?q=osmena", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var suggestions []Suggestion
	if err := json.Unmarshal(rec.Body.Bytes(), &suggestions); err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 1 || suggestions[0].Street != "Osmena Blvd" {
		t.Fatalf("unexpected suggestions: %+v", suggestions)
	}
}

func TestReverseLookup_NotFoundShape(t *testing.T) {
	engine := mapsRouter(&fakeGeocoder{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/maps/reverse-lookup?lat=10.3&lon=123.9", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Found   bool        `json:"found"`
		Address *Suggestion `json:"address"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Found || body.Address != nil {
		t.Fatalf("expected found=false without address, got %+v", body)
	}
}

func TestReverseLookup_Found(t *testing.T) {
	engine := mapsRouter(&fakeGeocoder{
		reverse: &geocode.Result{
			DisplayName: "Jones Ave",
			Address:     address.ProviderBreakdown{Street: "Jones Ave"},
			Coordinate:  geocode.Coordinate{Latitude: 10.3, Longitude: 123.9},
		},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/maps/reverse-lookup?lat=10.3&lon=123.9", nil))

	var body struct {
		Found   bool        `json:"found"`
		Address *Suggestion `json:"address"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Found || body.Address == nil || body.Address.Street != "Jones Ave" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReverseLookup_ValidatesInput(t *testing.T) {
	engine := mapsRouter(&fakeGeocoder{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/maps/reverse-lookup?lat=10.3", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing lon, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/maps/reverse-lookup?lat=95&lon=123.9", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range coordinate, got %d", rec.Code)
	}
}
