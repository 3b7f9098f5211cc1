package properties

import (
	"jacs_portal_backend/internal/address"
	apphttp "jacs_portal_backend/internal/http"
	"jacs_portal_backend/internal/session"
	"jacs_portal_backend/platform/httpkit"
	"jacs_portal_backend/platform/logger"
	"jacs_portal_backend/platform/validator"
)

// RoleManager is the role required to create or modify properties.
const RoleManager = "manager"

// Module wires the property proxy HTTP routes.
type Module struct {
	handler *Handler
	client  *Client
}

func NewModule(baseURL string, geocoder Geocoder, defaults address.Defaults, sessions session.Store, log *logger.Logger) *Module {
	client := NewClient(baseURL, sessions, log)
	svc := NewService(client, geocoder, defaults, validator.New())
	return &Module{handler: NewHandler(svc), client: client}
}

func (m *Module) Name() string {
	return "properties"
}

// Client exposes the upstream client for CLI tools sharing the module wiring.
func (m *Module) Client() *Client {
	return m.client
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/properties")
	group.Use(httpkit.RequireRole(RoleManager))
	group.POST("", m.handler.Create)
	group.PUT("/:id", m.handler.Update)
}

var _ apphttp.Module = (*Module)(nil)
