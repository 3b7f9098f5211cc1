package listings

import (
	"net/http"

	"jacs_portal_backend/internal/filters"
	"jacs_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the listing search endpoint.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Search handles GET /api/v1/listings.
func (h *Handler) Search(c *gin.Context) {
	var f filters.Filters
	if err := c.ShouldBindQuery(&f); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid filter parameters", nil)
		return
	}

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		httpkit.Error(c, http.StatusBadRequest, "minimum price cannot exceed maximum price", nil)
		return
	}
	if (f.MinPrice != nil && *f.MinPrice < 0) || (f.MaxPrice != nil && *f.MaxPrice < 0) {
		httpkit.Error(c, http.StatusBadRequest, "price must be a non-negative number", nil)
		return
	}

	// A located search always carries the fixed radius.
	if f.HasLocation() && f.Radius == nil {
		radius := filters.LocationRadiusMeters
		f.Radius = &radius
	}

	page, err := h.client.Search(c.Request.Context(), f)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, page)
}
