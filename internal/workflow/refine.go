package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"clipscribe/internal/history"
	"clipscribe/internal/logging"
	"clipscribe/internal/services"
	"clipscribe/internal/store"
)

// Refine sends the asset's transcript through the language model with an
// editing instruction and applies the rewritten timeline verbatim.
func (p *Processor) Refine(ctx context.Context, assetID, instruction string) error {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithAssetID(ctx, assetID)
	ctx = services.WithStage(ctx, "refine")

	if p.refiner == nil || !p.refiner.Configured() {
		return services.Wrap(services.ErrConfiguration, "workflow", "refine",
			"llm api key not configured", nil)
	}

	unlock := p.store.Guard(assetID)
	defer unlock()

	if _, err := p.lookupAsset(ctx, assetID); err != nil {
		return err
	}

	doc := p.readTranscript(assetID)
	if doc == nil {
		return services.Wrap(services.ErrNotFound, "workflow", "refine",
			fmt.Sprintf("no transcript for %q; process the video first", assetID), nil)
	}

	rewritten, err := p.refiner.RewriteSegments(ctx, instruction, doc.Segments)
	if err != nil {
		return p.fail(ctx, assetID, "refinement failed", err)
	}

	markers := doc.Markers
	doc.Replace(rewritten)
	doc.Markers = markers
	if err := store.WriteDocument(p.store.TranscriptPath(assetID), doc); err != nil {
		return p.fail(ctx, assetID, "persist transcript", err)
	}

	p.history.Record(history.EventRefine,
		fmt.Sprintf("Transcript of %s refined", assetID),
		map[string]string{
			"video":       assetID,
			"instruction": instruction,
			"segments":    fmt.Sprintf("%d", len(rewritten)),
		},
	)
	logging.WithContext(ctx, p.logger).Info("transcript refined",
		logging.Int("segments", len(rewritten)),
	)
	return nil
}
