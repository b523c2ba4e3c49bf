package dashboard

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	dash "github.com/nfrund/userdash/internal/dashboard"
	"github.com/nfrund/userdash/internal/middleware"
	"github.com/nfrund/userdash/internal/module"
	"github.com/nfrund/userdash/internal/pubsub"
	"github.com/nfrund/userdash/internal/registry"
	"github.com/nfrund/userdash/internal/rendering"
)

// PageStoreKey publishes the module's page store to other modules.
var PageStoreKey = registry.Key[*PageStore]("dashboard.pages")

// Dependencies are the services the dashboard module needs.
type Dependencies struct {
	Fetcher    dash.Fetcher
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	MaxPages   int
}

// Module wires the dashboard routes into the server.
type Module struct {
	module.BaseModule
	deps    Dependencies
	pages   *PageStore
	handler *Handler
	cancel  context.CancelFunc
}

// New creates the dashboard module.
func New(deps Dependencies) *Module {
	return &Module{deps: deps}
}

// Name implements module.Module.
func (m *Module) Name() string {
	return "dashboard"
}

// Register creates the page store and publishes it.
func (m *Module) Register(reg *registry.Registry) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.pages = NewPageStore(ctx, m.deps.Fetcher, m.deps.MaxPages, slog.Default().With("module", m.Name()))
	registry.Set(reg, PageStoreKey, m.pages)
	return nil
}

// Boot registers the routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	pages := registry.MustGet(reg, PageStoreKey)
	m.handler = NewHandler(pages, m.deps.Fetcher, m.deps.Publisher, m.deps.Subscriber, m.deps.Renderer)

	limited := middleware.RateLimiter()

	g.GET("/users/:id", m.handler.UserGet)
	g.GET("/pages/:page", m.handler.PageGet)
	g.POST("/pages/:page/subject", m.handler.SubjectPost, limited)
	g.GET("/pages/:page/ws", m.handler.ServeWS)

	api := g.Group("/api", limited)
	api.GET("/users/:id/profile", m.handler.ProfileAPI)
	api.GET("/users/:id/activities", m.handler.ActivitiesAPI)
	api.GET("/pages/:page", m.handler.PageStateAPI)
	return nil
}

// Shutdown stops in-flight fetches of every page.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
