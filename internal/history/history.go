package history

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clipscribe/internal/logging"
	"clipscribe/internal/store"
)

// EventType classifies a history entry.
type EventType string

const (
	EventScan       EventType = "scan"
	EventUpload     EventType = "upload"
	EventProcess    EventType = "process"
	EventTranscribe EventType = "transcribe"
	EventEdit       EventType = "edit"
	EventRefine     EventType = "refine"
	EventScreenshot EventType = "screenshot"
	EventError      EventType = "error"
)

// Event is one immutable entry in the operational history.
type Event struct {
	ID      string            `json:"id"`
	At      time.Time         `json:"at"`
	Type    EventType         `json:"type"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type document struct {
	History []Event `json:"history"`
}

// Log records operational events into the prepend-ordered history document.
// Entries are never updated; the log supports deleting an individual entry or
// clearing everything.
type Log struct {
	store  *store.Store
	logger *slog.Logger

	mu sync.Mutex
}

// NewLog constructs a history log backed by the given store.
func NewLog(st *store.Store, logger *slog.Logger) *Log {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Log{store: st, logger: logger.With(logging.String(logging.FieldComponent, "history"))}
}

// Record appends a new event at the head of the history and persists it.
func (l *Log) Record(eventType EventType, message string, details map[string]string) Event {
	event := Event{
		ID:      newEventID(time.Now().UTC()),
		At:      time.Now().UTC(),
		Type:    eventType,
		Message: strings.TrimSpace(message),
		Details: details,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	doc := store.ReadDocument(l.store.HistoryPath(), document{})
	doc.History = append([]Event{event}, doc.History...)
	if err := store.WriteDocument(l.store.HistoryPath(), doc); err != nil {
		// History is best-effort: an unwritable log must not abort the
		// operation that produced the event.
		l.logger.Warn("failed to persist history event",
			logging.Error(err),
			logging.String("event_type", string(eventType)),
		)
	}
	return event
}

// List returns all events, newest first.
func (l *Log) List() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := store.ReadDocument(l.store.HistoryPath(), document{})
	return doc.History
}

// Delete removes a single event by id and reports whether it existed.
func (l *Log) Delete(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := store.ReadDocument(l.store.HistoryPath(), document{})
	kept := doc.History[:0]
	found := false
	for _, event := range doc.History {
		if event.ID == id {
			found = true
			continue
		}
		kept = append(kept, event)
	}
	if !found {
		return false, nil
	}
	doc.History = kept
	if err := store.WriteDocument(l.store.HistoryPath(), doc); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every event.
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return store.WriteDocument(l.store.HistoryPath(), document{History: []Event{}})
}

// newEventID builds a time-prefixed id with a random suffix. Ids sort roughly
// by creation time; the suffix keeps them globally unique.
func newEventID(now time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}
