package transcribe_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipscribe/internal/config"
	"clipscribe/internal/services"
	"clipscribe/internal/transcribe"
)

func newWhisper(t *testing.T) (*transcribe.Whisper, string) {
	t.Helper()
	outDir := t.TempDir()
	engine := transcribe.NewWhisper(config.Whisper{
		Binary:    "whisper",
		Model:     "base",
		OutputDir: outDir,
	})
	return engine, outDir
}

func TestWhisperParsesSegments(t *testing.T) {
	engine, outDir := newWhisper(t)

	var gotArgs []string
	engine.WithRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		result := `{"text":"hello world","segments":[` +
			`{"start":0,"end":2.5,"text":"  hello "},` +
			`{"start":"bogus","end":5,"text":"world"}]}`
		return os.WriteFile(filepath.Join(outDir, "demo.json"), []byte(result), 0o644)
	})

	segments, err := engine.Transcribe(context.Background(), "/tmp/demo.mp3")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "hello" {
		t.Fatalf("expected trimmed text, got %q", segments[0].Text)
	}
	if segments[1].Start != 0 {
		t.Fatalf("malformed start must coerce to 0, got %v", segments[1].Start)
	}

	joined := strings.Join(gotArgs, " ")
	for _, fragment := range []string{"whisper", "/tmp/demo.mp3", "--model base", "--task transcribe", "--fp16 False", "--output_format json"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in invocation %q", fragment, joined)
		}
	}
}

func TestWhisperSynthesizesWholeTextSegment(t *testing.T) {
	engine, outDir := newWhisper(t)
	engine.WithRunner(func(ctx context.Context, name string, args ...string) error {
		return os.WriteFile(filepath.Join(outDir, "demo.json"), []byte(`{"text":" full text only "}`), 0o644)
	})

	segments, err := engine.Transcribe(context.Background(), "/tmp/demo.mp3")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 synthesized segment, got %d", len(segments))
	}
	if segments[0].Start != 0 || segments[0].End != transcribe.SentinelEnd {
		t.Fatalf("expected {0, SentinelEnd} span, got %+v", segments[0])
	}
	if segments[0].Text != "full text only" {
		t.Fatalf("expected trimmed whole text, got %q", segments[0].Text)
	}
}

func TestWhisperProcessFailure(t *testing.T) {
	engine, _ := newWhisper(t)
	engine.WithRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1: model not found")
	})

	_, err := engine.Transcribe(context.Background(), "/tmp/demo.mp3")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestWhisperMissingResultFile(t *testing.T) {
	engine, _ := newWhisper(t)
	engine.WithRunner(func(ctx context.Context, name string, args ...string) error {
		return nil
	})

	_, err := engine.Transcribe(context.Background(), "/tmp/demo.mp3")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker for missing output, got %v", err)
	}
}

func TestWhisperMalformedResult(t *testing.T) {
	engine, outDir := newWhisper(t)
	engine.WithRunner(func(ctx context.Context, name string, args ...string) error {
		return os.WriteFile(filepath.Join(outDir, "demo.json"), []byte("{truncated"), 0o644)
	})

	_, err := engine.Transcribe(context.Background(), "/tmp/demo.mp3")
	if !errors.Is(err, services.ErrMalformedOutput) {
		t.Fatalf("expected malformed output marker, got %v", err)
	}
}

func TestWhisperRemovesStaleResultBeforeRun(t *testing.T) {
	engine, outDir := newWhisper(t)
	stale := filepath.Join(outDir, "demo.json")
	if err := os.WriteFile(stale, []byte(`{"text":"stale"}`), 0o644); err != nil {
		t.Fatalf("seed stale result: %v", err)
	}

	engine.WithRunner(func(ctx context.Context, name string, args ...string) error {
		if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
			t.Fatal("stale result should be removed before the run")
		}
		return os.WriteFile(stale, []byte(`{"text":"fresh"}`), 0o644)
	})

	segments, err := engine.Transcribe(context.Background(), "/tmp/demo.mp3")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if segments[0].Text != "fresh" {
		t.Fatalf("expected fresh result, got %q", segments[0].Text)
	}
}
