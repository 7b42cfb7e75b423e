package registry

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status represents the lifecycle of a video asset. Except for the one-scan
// transient StatusNew, status is a pure function of artifact presence.
type Status string

const (
	StatusNew         Status = "new"
	StatusUnprocessed Status = "unprocessed"
	StatusAudioReady  Status = "audio_ready"
	StatusReady       Status = "ready"
)

// DeriveStatus recomputes the lifecycle status from artifact presence.
func DeriveStatus(hasAudio, hasTranscript bool) Status {
	switch {
	case hasAudio && hasTranscript:
		return StatusReady
	case hasAudio:
		return StatusAudioReady
	default:
		return StatusUnprocessed
	}
}

// Asset is the registry record for one source video file.
type Asset struct {
	ID                  string    `json:"id"`
	FileName            string    `json:"fileName"`
	DisplayTitle        string    `json:"displayTitle"`
	VideoSizeBytes      int64     `json:"videoSizeBytes"`
	AudioFileRef        string    `json:"audioFileRef,omitempty"`
	AudioSizeBytes      int64     `json:"audioSizeBytes,omitempty"`
	TranscriptFileRef   string    `json:"transcriptFileRef,omitempty"`
	TranscriptSizeBytes int64     `json:"transcriptSizeBytes,omitempty"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}

// HasAudio reports whether an audio artifact was present at last reconciliation.
func (a *Asset) HasAudio() bool {
	return a.AudioFileRef != ""
}

// HasTranscript reports whether a transcript document was present at last reconciliation.
func (a *Asset) HasTranscript() bool {
	return a.TranscriptFileRef != ""
}

// Snapshot is the persisted registry document.
type Snapshot struct {
	Videos map[string]*Asset `json:"videos"`
}

// Sorted returns the snapshot's assets ordered by id for stable presentation.
func (s *Snapshot) Sorted() []*Asset {
	ids := make([]string, 0, len(s.Videos))
	for id := range s.Videos {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	assets := make([]*Asset, 0, len(ids))
	for _, id := range ids {
		assets = append(assets, s.Videos[id])
	}
	return assets
}

// AssetID derives the stable asset identifier from a video file name: the base
// name without its extension. Two differently-extensioned files sharing a base
// name collide; the reconciler rejects that arrangement loudly.
func AssetID(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DisplayTitle renders a human-facing title from an asset id by collapsing
// separator runs and title-casing the words.
func DisplayTitle(id string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range id {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return id
	}
	return cases.Title(language.Und).String(title)
}
