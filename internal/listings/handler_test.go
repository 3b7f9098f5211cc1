package listings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"jacs_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func searchRouter(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *url.Values) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var forwarded url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = r.URL.Query()
		upstream(w, r)
	}))
	t.Cleanup(server.Close)

	engine := gin.New()
	engine.GET("/listings", NewHandler(NewClient(server.URL, logger.New("test"))).Search)
	return engine, &forwarded
}

func TestSearch_ForwardsFiltersAndFillsRadius(t *testing.T) {
	engine, forwarded := searchRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"id": "p1", "name": "Unit A"}], "total": 1}`))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings?city=Cebu+City&latitude=10.3157&longitude=123.8854&search=studio", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if forwarded.Get("radius") != "100" {
		t.Fatalf("located search must carry the fixed radius, got %v", *forwarded)
	}
	if forwarded.Get("search") != "studio" || forwarded.Get("city") != "Cebu City" {
		t.Fatalf("filters not forwarded: %v", *forwarded)
	}

	var page Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestSearch_NoLocationNoRadius(t *testing.T) {
	engine, forwarded := searchRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings?search=studio", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if forwarded.Has("radius") {
		t.Fatalf("radius must not be set without a location, got %v", *forwarded)
	}
}

func TestSearch_InvalidPriceRangeRejected(t *testing.T) {
	called := false
	engine, _ := searchRouter(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings?min_price=5000&max_price=3000", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Fatal("invalid range must not reach the backend")
	}
}

func TestSearch_NegativePriceRejected(t *testing.T) {
	engine, _ := searchRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings?min_price=-10", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearch_UpstreamFailureIsBadGateway(t *testing.T) {
	engine, _ := searchRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
