package testsupport

import (
	"path/filepath"
	"testing"

	"boardhook/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Server.BaseURL = "https://board.example.test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.AttachmentsDir = filepath.Join(base, "files")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithBaseURL overrides the server base URL on the test config.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Server.BaseURL = url
	}
}

// WithOverdue enables the overdue scanner with the given interval in seconds.
func WithOverdue(interval int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Overdue.Enabled = true
		cfg.Overdue.Interval = interval
	}
}
