package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"

	"github.com/nfrund/userdash/internal/config"
	"github.com/nfrund/userdash/internal/handlers"
	appmiddleware "github.com/nfrund/userdash/internal/middleware"
	"github.com/nfrund/userdash/internal/module"
	"github.com/nfrund/userdash/internal/pubsub"
	"github.com/nfrund/userdash/internal/registry"
	"github.com/nfrund/userdash/internal/rendering"
	"github.com/nfrund/userdash/web"
)

// Server holds the HTTP server and the modules mounted on it.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Registry *registry.Registry

	modules []module.Module
	bridge  *pubsub.WatermillBridge
}

// New builds a Server from the services in the injector.
func New(i do.Injector) (*Server, error) {
	cfg := do.MustInvoke[config.Provider](i)
	renderer := do.MustInvoke[rendering.Renderer](i)
	bridge := do.MustInvoke[*pubsub.WatermillBridge](i)
	modules := do.MustInvoke[[]module.Module](i)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Renderer = renderer
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
	e.FileFS("/placeholder.svg", "static/placeholder.svg", web.FS)

	homeHandler := handlers.NewHomeHandler()
	e.GET("/", homeHandler.HomeGet)
	e.GET("/health", handlers.HealthGet)

	reg := registry.New(cfg)
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return nil, fmt.Errorf("registering module %s: %w", m.Name(), err)
		}
	}
	root := e.Group("")
	for _, m := range modules {
		if err := m.Boot(context.Background(), root, reg); err != nil {
			return nil, fmt.Errorf("booting module %s: %w", m.Name(), err)
		}
		slog.Info("Module booted", "module", m.Name())
	}

	return &Server{
		E:        e,
		Cfg:      cfg,
		Registry: reg,
		modules:  modules,
		bridge:   bridge,
	}, nil
}

// Shutdown stops the HTTP server, the modules and the message bus.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.E.Shutdown(ctx)
	for _, m := range s.modules {
		if merr := m.Shutdown(ctx); merr != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", merr)
		}
	}
	if berr := s.bridge.Close(); berr != nil {
		slog.Error("Closing message bus failed", "error", berr)
	}
	return err
}
