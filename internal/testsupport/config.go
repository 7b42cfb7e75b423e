package testsupport

import (
	"path/filepath"
	"testing"

	"clipscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "videos")
	cfg.Paths.ArtifactDir = filepath.Join(base, "audio")
	cfg.Paths.TranscriptDir = filepath.Join(base, "transcripts")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Whisper.OutputDir = filepath.Join(base, "whisper")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithCloudKey sets the cloud transcription API key on the test config.
func WithCloudKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cloud.APIKey = key
	}
}

// WithToolTimeout overrides the external tool timeout on the test config.
func WithToolTimeout(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workflow.ToolTimeoutSeconds = seconds
	}
}
