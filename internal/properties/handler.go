package properties

import (
	"net/http"

	"jacs_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the property create/update endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /api/v1/properties.
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property payload", err.Error())
		return
	}

	payload, err := h.svc.Create(c.Request.Context(), req, identity.Token())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, payload)
}

// Update handles PUT /api/v1/properties/:id.
func (h *Handler) Update(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id := c.Param("id")
	if id == "" {
		httpkit.Error(c, http.StatusBadRequest, "property id is required", nil)
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property payload", err.Error())
		return
	}

	payload, err := h.svc.Update(c.Request.Context(), id, req, identity.Token())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, payload)
}
