package maps

import (
	"net/http"

	"jacs_portal_backend/internal/geocode"
	"jacs_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the maps lookup endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// LookupAddress handles GET /api/v1/maps/address-lookup?q=...
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	httpkit.OK(c, h.svc.SearchAddress(c.Request.Context(), req.Query))
}

// ReverseLookup handles GET /api/v1/maps/reverse-lookup?lat=...&lon=...
func (h *Handler) ReverseLookup(c *gin.Context) {
	var req ReverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "'lat' and 'lon' are required", nil)
		return
	}

	coord := geocode.Coordinate{Latitude: *req.Lat, Longitude: *req.Lon}
	if !coord.Valid() {
		httpkit.Error(c, http.StatusBadRequest, "coordinate out of range", nil)
		return
	}

	suggestion := h.svc.ReverseAddress(c.Request.Context(), coord)
	if suggestion == nil {
		// Indistinguishable from a provider failure; the widget shows
		// "could not resolve" and keeps the pin either way.
		httpkit.OK(c, gin.H{"found": false})
		return
	}

	httpkit.OK(c, gin.H{"found": true, "address": suggestion})
}
