package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clipscribe/internal/config"
	"clipscribe/internal/history"
	"clipscribe/internal/logging"
	"clipscribe/internal/services"
	"clipscribe/internal/store"
)

// videoExtensions is the fixed allow-list of container extensions accepted
// during a library scan. Matching is case-insensitive.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".mkv":  {},
	".avi":  {},
	".webm": {},
}

// Reconciler aligns the persisted video registry with the actual library
// directory contents and derives each asset's lifecycle status.
type Reconciler struct {
	cfg     *config.Config
	store   *store.Store
	history *history.Log
	logger  *slog.Logger
	now     func() time.Time
}

// NewReconciler constructs a reconciler over the given store and history log.
func NewReconciler(cfg *config.Config, st *store.Store, log *history.Log, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconciler{
		cfg:     cfg,
		store:   st,
		history: log,
		logger:  logger.With(logging.String(logging.FieldComponent, "registry")),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the reconciler's clock (for tests).
func (r *Reconciler) WithClock(now func() time.Time) {
	r.now = now
}

// Reconcile lists the library directory, creates registry entries for newly
// discovered videos, refreshes file and artifact metadata for every accepted
// file, recomputes statuses, persists the registry in full, and returns it.
//
// Entries whose files have since disappeared are left in place: a scan creates
// or refreshes, it never deletes.
func (r *Reconciler) Reconcile(ctx context.Context) (*Snapshot, error) {
	entries, err := os.ReadDir(r.cfg.Paths.LibraryDir)
	if err != nil {
		return nil, fmt.Errorf("list video library: %w", err)
	}

	snapshot := store.ReadDocument(r.store.RegistryPath(), Snapshot{})
	if snapshot.Videos == nil {
		snapshot.Videos = make(map[string]*Asset)
	}

	seen := make(map[string]string, len(entries))
	discovered := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}

		id := AssetID(name)
		if previous, dup := seen[id]; dup {
			return nil, services.Wrap(services.ErrValidation, "registry", "reconcile",
				fmt.Sprintf("files %q and %q both map to asset id %q; rename one", previous, name, id), nil)
		}
		seen[id] = name

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat video %s: %w", name, err)
		}

		asset, known := snapshot.Videos[id]
		if !known {
			asset = &Asset{
				ID:           id,
				DisplayTitle: DisplayTitle(id),
				Status:       StatusNew,
				CreatedAt:    r.now(),
			}
			snapshot.Videos[id] = asset
			discovered++
			r.history.Record(history.EventScan,
				fmt.Sprintf("Discovered video %s", name),
				map[string]string{"video": id, "file": name},
			)
		}

		asset.FileName = name
		asset.VideoSizeBytes = info.Size()
		r.probeArtifacts(asset)

		// A just-discovered asset keeps its transient "new" status for this
		// one pass; everything else derives status from artifact presence.
		if known {
			asset.Status = DeriveStatus(asset.HasAudio(), asset.HasTranscript())
		}
	}

	snap := &snapshot
	if err := r.Persist(snap); err != nil {
		return nil, err
	}

	logging.WithContext(ctx, r.logger).Debug("library reconciled",
		logging.Int("videos", len(seen)),
		logging.Int("discovered", discovered),
	)
	return snap, nil
}

// Persist writes the registry document in full.
func (r *Reconciler) Persist(snapshot *Snapshot) error {
	if err := store.WriteDocument(r.store.RegistryPath(), snapshot); err != nil {
		return fmt.Errorf("persist registry: %w", err)
	}
	return nil
}

// probeArtifacts refreshes derived artifact references from disk. A stat
// failure counts as absence, not error.
func (r *Reconciler) probeArtifacts(asset *Asset) {
	asset.AudioFileRef = ""
	asset.AudioSizeBytes = 0
	audioName := asset.ID + ".mp3"
	if info, err := os.Stat(filepath.Join(r.cfg.Paths.ArtifactDir, audioName)); err == nil && !info.IsDir() {
		asset.AudioFileRef = audioName
		asset.AudioSizeBytes = info.Size()
	}

	asset.TranscriptFileRef = ""
	asset.TranscriptSizeBytes = 0
	transcriptName := asset.ID + ".json"
	if info, err := os.Stat(r.store.TranscriptPath(asset.ID)); err == nil && !info.IsDir() {
		asset.TranscriptFileRef = transcriptName
		asset.TranscriptSizeBytes = info.Size()
	}
}
