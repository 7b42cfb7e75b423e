package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clipscribe/internal/config"
	"clipscribe/internal/services"
)

// Whisper runs the local transcription binary and parses its structured
// output file.
type Whisper struct {
	binary    string
	model     string
	outputDir string
	runner    func(ctx context.Context, name string, args ...string) error
}

// NewWhisper creates the local engine from configuration.
func NewWhisper(cfg config.Whisper) *Whisper {
	return &Whisper{
		binary:    cfg.Binary,
		model:     cfg.Model,
		outputDir: cfg.OutputDir,
	}
}

// WithRunner sets a custom command runner (for testing).
func (w *Whisper) WithRunner(runner func(ctx context.Context, name string, args ...string) error) {
	w.runner = runner
}

// Name identifies the engine in events and logs.
func (w *Whisper) Name() string { return "whisper" }

// Model returns the configured model identifier.
func (w *Whisper) Model() string { return w.model }

// Transcribe invokes the binary against the audio file and parses the JSON
// result it writes next to the output directory. The result file is named
// after the audio file's base name; any stale copy from a previous attempt is
// removed before the run.
func (w *Whisper) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	if audioPath == "" {
		return nil, services.Wrap(services.ErrValidation, "whisper", "transcribe", "audio path required", nil)
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("whisper: ensure output dir: %w", err)
	}

	resultPath := w.resultPath(audioPath)
	_ = os.Remove(resultPath)

	args := []string{
		audioPath,
		"--model", w.model,
		"--task", "transcribe",
		"--fp16", "False",
		"--output_format", "json",
		"--output_dir", w.outputDir,
	}
	if err := w.run(ctx, w.binary, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "whisper", "transcribe", "", err)
	}

	data, err := os.ReadFile(resultPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "whisper", "transcribe", "result file missing", err)
	}

	raw, text, err := decodePayload(data)
	if err != nil {
		return nil, services.Wrap(services.ErrMalformedOutput, "whisper", "transcribe", "parse result", err)
	}
	segments := coerceSegments(raw, text)
	if segments == nil {
		return nil, services.Wrap(services.ErrMalformedOutput, "whisper", "transcribe", "result carried no segments or text", nil)
	}
	return segments, nil
}

func (w *Whisper) resultPath(audioPath string) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(w.outputDir, base+".json")
}

func (w *Whisper) run(ctx context.Context, name string, args ...string) error {
	if w.runner != nil {
		return w.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
