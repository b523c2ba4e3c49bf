package app

import (
	"github.com/nfrund/userdash/internal/module"
	"github.com/nfrund/userdash/internal/modules/dashboard"
)

// NewModules creates and returns the list of all active modules for the application.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		dashboard.New(dashboardDeps(deps)),
	}
}

// dashboardDeps creates the dependency struct for the dashboard module.
func dashboardDeps(deps Dependencies) dashboard.Dependencies {
	return dashboard.Dependencies{
		Fetcher:    deps.Fetcher,
		Publisher:  deps.Publisher,
		Subscriber: deps.Subscriber,
		Renderer:   deps.Renderer,
		MaxPages:   deps.MaxPages,
	}
}
