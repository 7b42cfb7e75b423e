package transcribe

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// SentinelEnd is the end timestamp assigned to a synthesized whole-text
// segment when an engine returns no per-utterance timings. It is a well-known
// large constant rather than a true unbounded value so sorting and duration
// math stay stable downstream.
const SentinelEnd float64 = 999999

// Segment is one timestamped span of transcript text.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Engine produces an ordered segment sequence from an audio file.
type Engine interface {
	// Name identifies the engine in events and logs ("whisper", "cloud").
	Name() string
	// Model returns the model identifier the engine runs with.
	Model() string
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
}

// flexFloat tolerates malformed numeric timestamps in engine output,
// defaulting them to 0 instead of failing the whole transcript.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(value)
	return nil
}

// rawSegment is the wire shape shared by both engines' structured output.
type rawSegment struct {
	Start flexFloat `json:"start"`
	End   flexFloat `json:"end"`
	Text  string    `json:"text"`
}

// coerceSegments converts engine wire segments into the uniform shape,
// trimming text. When no segments are present but whole text exists, a single
// segment spanning {0, SentinelEnd} is synthesized. Returns nil when the
// output carried neither.
func coerceSegments(raw []rawSegment, wholeText string) []Segment {
	if len(raw) > 0 {
		segments := make([]Segment, 0, len(raw))
		for _, seg := range raw {
			segments = append(segments, Segment{
				Start: float64(seg.Start),
				End:   float64(seg.End),
				Text:  strings.TrimSpace(seg.Text),
			})
		}
		return segments
	}
	if text := strings.TrimSpace(wholeText); text != "" {
		return []Segment{{Start: 0, End: SentinelEnd, Text: text}}
	}
	return nil
}

// decodePayload unmarshals a structured transcription payload.
func decodePayload(data []byte) (segments []rawSegment, text string, err error) {
	var payload struct {
		Text     string       `json:"text"`
		Segments []rawSegment `json:"segments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, "", err
	}
	return payload.Segments, payload.Text, nil
}
