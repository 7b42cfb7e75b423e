package workflow

import (
	"context"
	"fmt"

	"clipscribe/internal/history"
	"clipscribe/internal/logging"
	"clipscribe/internal/services"
	"clipscribe/internal/store"
	"clipscribe/internal/transcribe"
	"clipscribe/internal/transcript"
)

// InsertMarker anchors a screenshot reference at a point in the asset's
// transcript timeline. A marker may land before the asset has been processed;
// it then lives in a skeleton document until transcription replaces it.
func (p *Processor) InsertMarker(ctx context.Context, assetID string, at float64, fileName, url string) error {
	ctx = services.WithAssetID(ctx, assetID)

	unlock := p.store.Guard(assetID)
	defer unlock()

	if _, err := p.lookupAsset(ctx, assetID); err != nil {
		return err
	}
	if at < 0 {
		return services.Wrap(services.ErrValidation, "workflow", "marker",
			"marker time must not be negative", nil)
	}

	doc := p.readTranscript(assetID)
	if doc == nil {
		doc = transcript.New(assetID)
	}
	doc.InsertMarker(at, fileName, url)
	if err := store.WriteDocument(p.store.TranscriptPath(assetID), doc); err != nil {
		return p.fail(ctx, assetID, "persist transcript", err)
	}

	p.history.Record(history.EventScreenshot,
		fmt.Sprintf("Marker %s added to %s", fileName, assetID),
		map[string]string{
			"video": assetID,
			"file":  fileName,
			"time":  fmt.Sprintf("%.2f", at),
		},
	)
	logging.WithContext(ctx, p.logger).Info("marker inserted",
		logging.String("file", fileName),
		logging.Float64("time", at),
	)
	return nil
}

// EditSegments replaces the transcript's segment timeline with an externally
// edited one. The whole timeline is swapped; markers stay in place.
func (p *Processor) EditSegments(ctx context.Context, assetID string, segments []transcribe.Segment) error {
	ctx = services.WithAssetID(ctx, assetID)

	unlock := p.store.Guard(assetID)
	defer unlock()

	if _, err := p.lookupAsset(ctx, assetID); err != nil {
		return err
	}

	doc := p.readTranscript(assetID)
	if doc == nil {
		return services.Wrap(services.ErrNotFound, "workflow", "edit",
			fmt.Sprintf("no transcript for %q; process the video first", assetID), nil)
	}

	markers := doc.Markers
	doc.Replace(segments)
	doc.Markers = markers
	doc.SortSegments()
	if err := store.WriteDocument(p.store.TranscriptPath(assetID), doc); err != nil {
		return p.fail(ctx, assetID, "persist transcript", err)
	}

	p.history.Record(history.EventEdit,
		fmt.Sprintf("Transcript of %s edited", assetID),
		map[string]string{
			"video":    assetID,
			"segments": fmt.Sprintf("%d", len(segments)),
		},
	)
	return nil
}
