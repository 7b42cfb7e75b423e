package transcribe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"clipscribe/internal/config"
	"clipscribe/internal/services"
	"clipscribe/internal/transcribe"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.mp3")
	if err := os.WriteFile(path, []byte("fake audio bytes"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}
	return path
}

func newCloudAgainst(t *testing.T, handler http.HandlerFunc) *transcribe.Cloud {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return transcribe.NewCloud(config.Cloud{
		APIKey:  "sk-test",
		BaseURL: server.URL,
		Model:   "whisper-1",
	})
}

func TestCloudParsesSegmentedResponse(t *testing.T) {
	engine := newCloudAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("unexpected model field %q", got)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("unexpected response_format %q", got)
		}
		w.Write([]byte(`{"text":"a b","segments":[{"start":0,"end":1,"text":" a "},{"start":1,"end":2,"text":"b"}]}`))
	})

	segments, err := engine.Transcribe(context.Background(), writeAudioFixture(t))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(segments) != 2 || segments[0].Text != "a" {
		t.Fatalf("unexpected segments %+v", segments)
	}
}

func TestCloudSynthesizesFlatTextResponse(t *testing.T) {
	engine := newCloudAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"flat text only"}`))
	})

	segments, err := engine.Transcribe(context.Background(), writeAudioFixture(t))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(segments) != 1 || segments[0].End != transcribe.SentinelEnd {
		t.Fatalf("expected single sentinel segment, got %+v", segments)
	}
}

func TestCloudHTTPErrorSurfacesBody(t *testing.T) {
	engine := newCloudAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	})

	_, err := engine.Transcribe(context.Background(), writeAudioFixture(t))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestCloudMalformedResponse(t *testing.T) {
	engine := newCloudAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := engine.Transcribe(context.Background(), writeAudioFixture(t))
	if !errors.Is(err, services.ErrMalformedOutput) {
		t.Fatalf("expected malformed output marker, got %v", err)
	}
}

func TestCloudUnconfigured(t *testing.T) {
	engine := transcribe.NewCloud(config.Cloud{})
	if engine.Configured() {
		t.Fatal("engine without key must not report configured")
	}
	_, err := engine.Transcribe(context.Background(), "/tmp/demo.mp3")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}
