package media

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"clipscribe/internal/services"
)

// Extractor strips the video stream from a source file and encodes the audio
// to MP3 via ffmpeg.
type Extractor struct {
	binary string
	runner func(ctx context.Context, name string, args ...string) error
}

// NewExtractor creates an extractor using the given ffmpeg binary name.
func NewExtractor(binary string) *Extractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Extractor{binary: binary}
}

// WithRunner sets a custom command runner (for testing).
func (e *Extractor) WithRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.runner = runner
}

// AudioArtifactPath returns the deterministic audio artifact location for an
// asset id.
func AudioArtifactPath(artifactDir, assetID string) string {
	return filepath.Join(artifactDir, assetID+".mp3")
}

// Extract produces the audio artifact for a source video. A non-zero exit
// surfaces the tool's captured stderr; a half-written destination from a
// failed run is left in place for the next attempt to overwrite.
func (e *Extractor) Extract(ctx context.Context, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-acodec", "libmp3lame",
		dest,
	}
	if err := e.run(ctx, e.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "extract", "ffmpeg", "", err)
	}
	return nil
}

func (e *Extractor) run(ctx context.Context, name string, args ...string) error {
	if e.runner != nil {
		return e.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
