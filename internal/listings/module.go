package listings

import (
	apphttp "jacs_portal_backend/internal/http"
	"jacs_portal_backend/platform/logger"
)

// Module wires the public listing search route.
type Module struct {
	handler *Handler
}

func NewModule(baseURL string, log *logger.Logger) *Module {
	client := NewClient(baseURL, log)
	return &Module{handler: NewHandler(client)}
}

func (m *Module) Name() string {
	return "listings"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Listing search is public; tenants browse before signing in.
	ctx.V1.GET("/listings", m.handler.Search)
}

var _ apphttp.Module = (*Module)(nil)
