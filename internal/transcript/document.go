package transcript

import (
	"fmt"
	"sort"
	"time"

	"clipscribe/internal/transcribe"
)

// Marker anchors an external reference (typically a screenshot) to a point in
// the timeline.
type Marker struct {
	Time     float64 `json:"time"`
	FileName string  `json:"fileName"`
	URL      string  `json:"url"`
}

// Document is the persisted transcript for one asset: the segment timeline
// plus any markers inserted after transcription.
type Document struct {
	VideoID   string               `json:"videoId"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Segments  []transcribe.Segment `json:"transcript"`
	Markers   []Marker             `json:"markers"`
}

// New returns an empty document skeleton for the given asset.
func New(videoID string) *Document {
	return &Document{
		VideoID:  videoID,
		Segments: []transcribe.Segment{},
		Markers:  []Marker{},
	}
}

// Replace swaps in a fresh segment timeline and drops all markers. Used when
// an asset is reprocessed: marker positions from the old timeline carry no
// meaning against the new one.
func (d *Document) Replace(segments []transcribe.Segment) {
	d.Segments = append([]transcribe.Segment{}, segments...)
	d.Markers = []Marker{}
	d.SortSegments()
	d.touch()
}

// InsertMarker records a marker at the given time and weaves a one-second
// annotation segment into the timeline so the reference is visible when the
// transcript is read linearly.
func (d *Document) InsertMarker(at float64, fileName, url string) {
	d.Markers = append(d.Markers, Marker{Time: at, FileName: fileName, URL: url})
	d.Segments = append(d.Segments, transcribe.Segment{
		Start: at,
		End:   at + 1,
		Text:  fmt.Sprintf("[Screenshot: %s]", fileName),
	})
	d.SortSegments()
	d.touch()
}

// SortSegments orders the timeline by start time. The sort is stable so a
// marker inserted at an existing segment's start lands after it.
func (d *Document) SortSegments() {
	sort.SliceStable(d.Segments, func(i, j int) bool {
		return d.Segments[i].Start < d.Segments[j].Start
	})
}

func (d *Document) touch() {
	d.UpdatedAt = time.Now().UTC()
}
