package app

import (
	"github.com/samber/do/v2"

	"github.com/nfrund/userdash/internal/config"
	dash "github.com/nfrund/userdash/internal/dashboard"
	"github.com/nfrund/userdash/internal/module"
	"github.com/nfrund/userdash/internal/pubsub"
	"github.com/nfrund/userdash/internal/rendering"
	"github.com/nfrund/userdash/internal/upstream"
)

// Dependencies holds the core services that are required by the application's modules.
type Dependencies struct {
	Fetcher    dash.Fetcher
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	MaxPages   int
}

// NewInjector builds the application's service container. A nil fetcher
// selects the upstream HTTP client built from cfg.
func NewInjector(cfg config.Provider, fetcher dash.Fetcher) do.Injector {
	i := do.New()

	do.ProvideValue[config.Provider](i, cfg)

	if fetcher != nil {
		do.ProvideValue[dash.Fetcher](i, fetcher)
	} else {
		do.Provide(i, func(i do.Injector) (dash.Fetcher, error) {
			return upstream.NewClientFromConfig(do.MustInvoke[config.Provider](i)), nil
		})
	}

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(), nil
	})

	do.Provide(i, func(i do.Injector) (rendering.Renderer, error) {
		return rendering.NewComponentRenderer(), nil
	})

	do.Provide(i, func(i do.Injector) (Dependencies, error) {
		bridge := do.MustInvoke[*pubsub.WatermillBridge](i)
		return Dependencies{
			Fetcher:    do.MustInvoke[dash.Fetcher](i),
			Publisher:  bridge,
			Subscriber: bridge,
			Renderer:   do.MustInvoke[rendering.Renderer](i),
			MaxPages:   do.MustInvoke[config.Provider](i).GetMaxPages(),
		}, nil
	})

	do.Provide(i, func(i do.Injector) ([]module.Module, error) {
		return NewModules(do.MustInvoke[Dependencies](i)), nil
	})

	return i
}
