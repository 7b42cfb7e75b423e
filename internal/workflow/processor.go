package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"clipscribe/internal/config"
	"clipscribe/internal/history"
	"clipscribe/internal/logging"
	"clipscribe/internal/media"
	"clipscribe/internal/registry"
	"clipscribe/internal/services"
	"clipscribe/internal/store"
	"clipscribe/internal/transcribe"
	"clipscribe/internal/transcript"
)

// Extractor derives the audio artifact for a source video.
type Extractor interface {
	Extract(ctx context.Context, source, dest string) error
}

// Transcriber turns an audio artifact into a segment timeline.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]transcribe.Segment, error)
}

// Refiner rewrites a segment timeline per an editing instruction.
type Refiner interface {
	Configured() bool
	RewriteSegments(ctx context.Context, instruction string, segments []transcribe.Segment) ([]transcribe.Segment, error)
}

// Processor orchestrates the per-asset pipeline: reconcile, extract,
// transcribe, persist. Each operation takes the asset's guard so concurrent
// invocations against the same asset serialize.
type Processor struct {
	cfg         *config.Config
	store       *store.Store
	reconciler  *registry.Reconciler
	history     *history.Log
	extractor   Extractor
	transcriber Transcriber
	refiner     Refiner
	logger      *slog.Logger
}

// NewProcessor wires the pipeline components together.
func NewProcessor(
	cfg *config.Config,
	st *store.Store,
	reconciler *registry.Reconciler,
	log *history.Log,
	extractor Extractor,
	transcriber Transcriber,
	refiner Refiner,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:         cfg,
		store:       st,
		reconciler:  reconciler,
		history:     log,
		extractor:   extractor,
		transcriber: transcriber,
		refiner:     refiner,
		logger:      logger.With(logging.String(logging.FieldComponent, "workflow")),
	}
}

// Process runs the full pipeline for one asset: extract audio, transcribe it,
// and write a fresh transcript document. Reprocessing an already-ready asset
// replaces its transcript entirely, markers included.
func (p *Processor) Process(ctx context.Context, assetID string) error {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithAssetID(ctx, assetID)
	logger := logging.WithContext(ctx, p.logger)

	unlock := p.store.Guard(assetID)
	defer unlock()

	asset, err := p.lookupAsset(ctx, assetID)
	if err != nil {
		return err
	}

	p.history.Record(history.EventProcess,
		fmt.Sprintf("Processing %s", asset.FileName),
		map[string]string{"video": assetID},
	)
	started := time.Now()

	source := filepath.Join(p.cfg.Paths.LibraryDir, asset.FileName)
	audioPath := media.AudioArtifactPath(p.cfg.Paths.ArtifactDir, assetID)

	toolCtx, cancel := p.toolContext(ctx)
	defer cancel()

	ctx = services.WithStage(ctx, "extract")
	if err := p.extractor.Extract(toolCtx, source, audioPath); err != nil {
		return p.fail(ctx, assetID, "audio extraction failed", err)
	}
	logger.Info("audio extracted", logging.String("artifact", audioPath))

	ctx = services.WithStage(ctx, "transcribe")
	segments, err := p.transcriber.Transcribe(toolCtx, audioPath)
	if err != nil {
		return p.fail(ctx, assetID, "transcription failed", err)
	}

	doc := transcript.New(assetID)
	doc.Replace(segments)
	if err := store.WriteDocument(p.store.TranscriptPath(assetID), doc); err != nil {
		return p.fail(ctx, assetID, "persist transcript", err)
	}

	// Reconciling again refreshes the artifact references and derives the
	// ready status from what is now on disk.
	if _, err := p.reconciler.Reconcile(ctx); err != nil {
		return p.fail(ctx, assetID, "refresh registry", err)
	}

	p.history.Record(history.EventProcess,
		fmt.Sprintf("Processed %s", asset.FileName),
		map[string]string{
			"video":    assetID,
			"segments": fmt.Sprintf("%d", len(segments)),
			"duration": time.Since(started).Round(time.Millisecond).String(),
		},
	)
	logger.Info("asset processed",
		logging.Int("segments", len(segments)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// lookupAsset reconciles the library and returns the named asset, so a file
// dropped into the library just before processing is still picked up.
func (p *Processor) lookupAsset(ctx context.Context, assetID string) (*registry.Asset, error) {
	snapshot, err := p.reconciler.Reconcile(ctx)
	if err != nil {
		return nil, err
	}
	asset, ok := snapshot.Videos[assetID]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "workflow", "process",
			fmt.Sprintf("no video with id %q in the library", assetID), nil)
	}
	return asset, nil
}

// toolContext bounds external tool invocations with the configured deadline.
func (p *Processor) toolContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(p.cfg.Workflow.ToolTimeoutSeconds) * time.Second
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// fail records the failure in the event log and returns the original cause.
func (p *Processor) fail(ctx context.Context, assetID, message string, cause error) error {
	p.history.Record(history.EventError,
		fmt.Sprintf("%s for %s", message, assetID),
		map[string]string{"video": assetID, "cause": cause.Error()},
	)
	logging.WithContext(ctx, p.logger).Error(message, logging.Error(cause))
	return cause
}

// readTranscript loads the asset's transcript document, or nil when none has
// been written yet.
func (p *Processor) readTranscript(assetID string) *transcript.Document {
	path := p.store.TranscriptPath(assetID)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return store.ReadDocument(path, transcript.New(assetID))
}
