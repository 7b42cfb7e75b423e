package transcribe

import (
	"context"
	"fmt"
	"log/slog"

	"clipscribe/internal/history"
	"clipscribe/internal/logging"
	"clipscribe/internal/services"
)

// FallbackEngine is an Engine that may be present but unconfigured.
type FallbackEngine interface {
	Engine
	Configured() bool
}

// Adapter is the failure-isolation boundary over the transcription engines.
// Callers see one success shape (a segment sequence) or one tagged error;
// engine selection and the audit trail of which engine actually ran live
// here, in the event log.
type Adapter struct {
	primary  Engine
	fallback FallbackEngine
	history  *history.Log
	logger   *slog.Logger
}

// NewAdapter wires the primary engine, the optional cloud fallback, and the
// event log the transitions are recorded to.
func NewAdapter(primary Engine, fallback FallbackEngine, log *history.Log, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Adapter{
		primary:  primary,
		fallback: fallback,
		history:  log,
		logger:   logger.With(logging.String(logging.FieldComponent, "transcribe")),
	}
}

// Transcribe runs the primary engine and, on any failure, the cloud fallback
// if and only if it is configured. Every transition is recorded as a history
// event naming the engine and model.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	logger := logging.WithContext(ctx, a.logger)

	segments, primaryErr := a.primary.Transcribe(ctx, audioPath)
	if primaryErr == nil {
		a.recordSuccess(a.primary, len(segments))
		return segments, nil
	}

	a.history.Record(history.EventError,
		fmt.Sprintf("Transcription with %s (%s) failed", a.primary.Name(), a.primary.Model()),
		map[string]string{
			"engine": a.primary.Name(),
			"model":  a.primary.Model(),
			"cause":  primaryErr.Error(),
		},
	)
	logger.Warn("primary transcription engine failed",
		logging.String(logging.FieldEngine, a.primary.Name()),
		logging.Error(primaryErr),
	)

	if a.fallback == nil || !a.fallback.Configured() {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", a.primary.Name(),
			"fallback unavailable", primaryErr)
	}

	segments, fallbackErr := a.fallback.Transcribe(ctx, audioPath)
	if fallbackErr != nil {
		a.history.Record(history.EventError,
			fmt.Sprintf("Fallback transcription with %s (%s) failed", a.fallback.Name(), a.fallback.Model()),
			map[string]string{
				"engine": a.fallback.Name(),
				"model":  a.fallback.Model(),
				"cause":  fallbackErr.Error(),
			},
		)
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", a.fallback.Name(),
			fmt.Sprintf("fallback failed after primary error: %v", primaryErr), fallbackErr)
	}

	a.recordSuccess(a.fallback, len(segments))
	logger.Info("fallback transcription engine succeeded",
		logging.String(logging.FieldEngine, a.fallback.Name()),
	)
	return segments, nil
}

func (a *Adapter) recordSuccess(engine Engine, segmentCount int) {
	a.history.Record(history.EventTranscribe,
		fmt.Sprintf("Transcribed with %s (%s)", engine.Name(), engine.Model()),
		map[string]string{
			"engine":   engine.Name(),
			"model":    engine.Model(),
			"segments": fmt.Sprintf("%d", segmentCount),
		},
	)
}
