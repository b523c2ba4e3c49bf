package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"github.com/nfrund/userdash/internal/config"
	"github.com/nfrund/userdash/internal/logging"
)

// ConfigForTests loads the .env.test file, applies overrides on top of it and
// returns the resulting configuration.
func ConfigForTests(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()

	path, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			break
		}
		if path == filepath.Dir(path) {
			t.Fatalf("could not find project root with go.mod")
		}
		path = filepath.Dir(path)
	}

	env, err := godotenv.Read(filepath.Join(path, ".env.test"))
	if err != nil {
		t.Fatalf("failed to load .env.test file: %v", err)
	}
	for key, value := range overrides {
		env[key] = value
	}
	for key, value := range env {
		t.Setenv(key, value)
	}

	logging.New()

	return config.FromEnv()
}
