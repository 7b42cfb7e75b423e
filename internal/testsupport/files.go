package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"clipscribe/internal/config"
)

// WriteVideo drops a fake video file into the library directory.
func WriteVideo(t testing.TB, cfg *config.Config, name string, size int) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.LibraryDir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write video %s: %v", name, err)
	}
	return path
}

// WriteArtifact drops a derived artifact file into the artifact directory.
func WriteArtifact(t testing.TB, cfg *config.Config, name string, size int) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.ArtifactDir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write artifact %s: %v", name, err)
	}
	return path
}

// WriteTranscriptFile drops a raw transcript file into the transcript directory.
func WriteTranscriptFile(t testing.TB, cfg *config.Config, name string, contents []byte) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.TranscriptDir, name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write transcript %s: %v", name, err)
	}
	return path
}
