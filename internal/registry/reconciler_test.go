package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipscribe/internal/history"
	"clipscribe/internal/registry"
	"clipscribe/internal/services"
	"clipscribe/internal/testsupport"
)

func TestReconcileDiscoversAndClassifies(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	log := history.NewLog(st, nil)
	rec := registry.NewReconciler(cfg, st, log, nil)

	testsupport.WriteVideo(t, cfg, "Demo_Clip.mp4", 1024)
	testsupport.WriteVideo(t, cfg, "notes.txt", 10)

	snap, err := rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(snap.Videos) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(snap.Videos))
	}

	asset := snap.Videos["Demo_Clip"]
	if asset == nil {
		t.Fatal("expected asset id Demo_Clip")
	}
	if asset.Status != registry.StatusNew {
		t.Fatalf("freshly discovered asset should be new, got %s", asset.Status)
	}
	if asset.FileName != "Demo_Clip.mp4" || asset.VideoSizeBytes != 1024 {
		t.Fatalf("file metadata not refreshed: %+v", asset)
	}
	if asset.DisplayTitle != "Demo Clip" {
		t.Fatalf("unexpected display title %q", asset.DisplayTitle)
	}
	if asset.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set on discovery")
	}

	events := log.List()
	if len(events) != 1 || events[0].Type != history.EventScan {
		t.Fatalf("expected one scan event, got %+v", events)
	}

	// Second pass reclassifies the transient new status from artifact presence.
	snap, err = rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	if got := snap.Videos["Demo_Clip"].Status; got != registry.StatusUnprocessed {
		t.Fatalf("expected unprocessed after second pass, got %s", got)
	}
	if len(log.List()) != 1 {
		t.Fatal("second pass must not emit another scan event")
	}
}

func TestReconcileDerivesStatusFromArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	rec := registry.NewReconciler(cfg, st, history.NewLog(st, nil), nil)

	testsupport.WriteVideo(t, cfg, "demo.mp4", 100)
	if _, err := rec.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	testsupport.WriteArtifact(t, cfg, "demo.mp3", 50)
	snap, err := rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	asset := snap.Videos["demo"]
	if asset.Status != registry.StatusAudioReady {
		t.Fatalf("expected audio_ready with audio only, got %s", asset.Status)
	}
	if asset.AudioFileRef != "demo.mp3" || asset.AudioSizeBytes != 50 {
		t.Fatalf("audio artifact not probed: %+v", asset)
	}

	testsupport.WriteTranscriptFile(t, cfg, "demo.json", []byte(`{"videoId":"demo"}`))
	snap, err = rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if got := snap.Videos["demo"].Status; got != registry.StatusReady {
		t.Fatalf("expected ready with both artifacts, got %s", got)
	}

	// Removing the audio artifact demotes the status again.
	if err := os.Remove(filepath.Join(cfg.Paths.ArtifactDir, "demo.mp3")); err != nil {
		t.Fatalf("remove artifact: %v", err)
	}
	snap, err = rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if got := snap.Videos["demo"].Status; got != registry.StatusUnprocessed {
		t.Fatalf("expected unprocessed after artifact removal, got %s", got)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	rec := registry.NewReconciler(cfg, st, history.NewLog(st, nil), nil)

	testsupport.WriteVideo(t, cfg, "a.mp4", 10)
	testsupport.WriteVideo(t, cfg, "b.mkv", 20)

	if _, err := rec.Reconcile(context.Background()); err != nil {
		t.Fatalf("first Reconcile failed: %v", err)
	}
	second, err := rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	third, err := rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("third Reconcile failed: %v", err)
	}

	if len(second.Videos) != len(third.Videos) {
		t.Fatalf("registry size changed between idle passes: %d vs %d", len(second.Videos), len(third.Videos))
	}
	for id, want := range second.Videos {
		got := third.Videos[id]
		if got == nil {
			t.Fatalf("asset %s vanished", id)
		}
		if *got != *want {
			t.Fatalf("asset %s changed between idle passes:\n%+v\n%+v", id, want, got)
		}
	}
}

func TestReconcileKeepsStaleEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	rec := registry.NewReconciler(cfg, st, history.NewLog(st, nil), nil)

	path := testsupport.WriteVideo(t, cfg, "gone.mp4", 10)
	if _, err := rec.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove video: %v", err)
	}
	snap, err := rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if snap.Videos["gone"] == nil {
		t.Fatal("scan must not delete entries for removed files")
	}
}

func TestReconcileRejectsBaseNameCollision(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	rec := registry.NewReconciler(cfg, st, history.NewLog(st, nil), nil)

	testsupport.WriteVideo(t, cfg, "clip.mp4", 10)
	testsupport.WriteVideo(t, cfg, "clip.mov", 10)

	_, err := rec.Reconcile(context.Background())
	if err == nil {
		t.Fatal("expected collision to fail the scan")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestReconcileFailsOnUnreadableLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	rec := registry.NewReconciler(cfg, st, history.NewLog(st, nil), nil)

	if err := os.RemoveAll(cfg.Paths.LibraryDir); err != nil {
		t.Fatalf("remove library: %v", err)
	}
	if _, err := rec.Reconcile(context.Background()); err == nil {
		t.Fatal("expected unreadable library to be fatal")
	}
}

func TestDeriveStatusTable(t *testing.T) {
	cases := []struct {
		audio, transcript bool
		want              registry.Status
	}{
		{false, false, registry.StatusUnprocessed},
		{true, false, registry.StatusAudioReady},
		{true, true, registry.StatusReady},
		{false, true, registry.StatusUnprocessed},
	}
	for _, tc := range cases {
		if got := registry.DeriveStatus(tc.audio, tc.transcript); got != tc.want {
			t.Fatalf("DeriveStatus(%v, %v) = %s, want %s", tc.audio, tc.transcript, got, tc.want)
		}
	}
}

func TestAssetID(t *testing.T) {
	if got := registry.AssetID("My Talk.mp4"); got != "My Talk" {
		t.Fatalf("AssetID = %q", got)
	}
	if got := registry.AssetID("nested/dir/demo.webm"); got != "demo" {
		t.Fatalf("AssetID = %q", got)
	}
}
