package maps

import (
	apphttp "jacs_portal_backend/internal/http"
)

// Module wires the maps lookup HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(geocoder Geocoder) *Module {
	svc := NewService(geocoder)
	h := NewHandler(svc)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/maps")
	group.Use(ctx.LookupRateLimiter.RateLimit())
	group.GET("/address-lookup", m.handler.LookupAddress)
	group.GET("/reverse-lookup", m.handler.ReverseLookup)
}

var _ apphttp.Module = (*Module)(nil)
