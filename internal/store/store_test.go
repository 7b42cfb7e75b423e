package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"clipscribe/internal/store"
	"clipscribe/internal/testsupport"
)

type sampleDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestReadDocumentFallbacks(t *testing.T) {
	dir := t.TempDir()

	missing := store.ReadDocument(filepath.Join(dir, "absent.json"), sampleDoc{Name: "fallback"})
	if missing.Name != "fallback" {
		t.Fatalf("expected fallback on missing file, got %+v", missing)
	}

	garbled := filepath.Join(dir, "garbled.json")
	if err := os.WriteFile(garbled, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write garbled: %v", err)
	}
	doc := store.ReadDocument(garbled, sampleDoc{Name: "fallback"})
	if doc.Name != "fallback" {
		t.Fatalf("expected fallback on malformed file, got %+v", doc)
	}
}

func TestWriteDocumentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	want := sampleDoc{Name: "demo", Count: 3}
	if err := store.WriteDocument(path, want); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	got := store.ReadDocument(path, sampleDoc{})
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"name\"") {
		t.Fatalf("expected pretty-printed output, got %q", raw)
	}
}

func TestWriteDocumentReplacesWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := store.WriteDocument(path, sampleDoc{Name: "first", Count: 1}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := store.WriteDocument(path, sampleDoc{Name: "second"}); err != nil {
		t.Fatalf("second write: %v", err)
	}
	got := store.ReadDocument(path, sampleDoc{})
	if got.Name != "second" || got.Count != 0 {
		t.Fatalf("expected whole-document replace, got %+v", got)
	}
}

func TestOpenRejectsSecondHolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer first.Close()

	if _, err := store.Open(cfg); err == nil {
		t.Fatal("expected second Open on same library to fail")
	}
}

func TestGuardSerializesPerAsset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	var value int
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := st.Guard("demo")
			defer unlock()
			value++
		}()
	}
	wg.Wait()
	if value != 16 {
		t.Fatalf("guard did not serialize writes: %d", value)
	}
}

func TestDocumentPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if filepath.Base(st.RegistryPath()) != "videos.json" {
		t.Fatalf("unexpected registry path %q", st.RegistryPath())
	}
	if filepath.Base(st.HistoryPath()) != "history.json" {
		t.Fatalf("unexpected history path %q", st.HistoryPath())
	}
	if filepath.Base(st.TranscriptPath("demo")) != "demo.json" {
		t.Fatalf("unexpected transcript path %q", st.TranscriptPath("demo"))
	}
}
