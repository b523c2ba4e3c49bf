package main

import (
	"log/slog"
	"os"

	"github.com/nfrund/userdash/internal/app"
	"github.com/nfrund/userdash/internal/config"
	"github.com/nfrund/userdash/internal/logging"
	"github.com/nfrund/userdash/internal/server"
)

func main() {
	logging.New()
	cfg := config.New()

	s, err := server.New(app.NewInjector(cfg, nil))
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	s.Start(cfg.GetServerAddr())
}
