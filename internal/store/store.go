package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"clipscribe/internal/config"
)

// Store owns the persisted JSON documents under the library directory and
// serializes access to them: a file lock keeps a second process out, and
// Guard hands out per-asset mutexes for read-modify-write cycles.
type Store struct {
	cfg      *config.Config
	lockPath string
	lock     *flock.Flock

	mu     sync.Mutex
	guards map[string]*sync.Mutex
}

// Open prepares the data directories and acquires the single-writer lock.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("store requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.LibraryDir, ".clipscribe.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("data directory %s is in use by another clipscribe process", cfg.Paths.LibraryDir)
	}

	return &Store{
		cfg:      cfg,
		lockPath: lockPath,
		lock:     lock,
		guards:   make(map[string]*sync.Mutex),
	}, nil
}

// Close releases the data directory lock.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Guard locks the named asset and returns the unlock function. Operations that
// read-modify-write an asset's documents hold its guard for the full cycle.
func (s *Store) Guard(assetID string) func() {
	s.mu.Lock()
	guard, ok := s.guards[assetID]
	if !ok {
		guard = &sync.Mutex{}
		s.guards[assetID] = guard
	}
	s.mu.Unlock()

	guard.Lock()
	return guard.Unlock
}

// RegistryPath returns the location of the video registry document.
func (s *Store) RegistryPath() string {
	return filepath.Join(s.cfg.Paths.LibraryDir, "videos.json")
}

// HistoryPath returns the location of the event history document.
func (s *Store) HistoryPath() string {
	return filepath.Join(s.cfg.Paths.LibraryDir, "history.json")
}

// TranscriptPath returns the location of an asset's transcript document.
func (s *Store) TranscriptPath(assetID string) string {
	return filepath.Join(s.cfg.Paths.TranscriptDir, assetID+".json")
}

// ReadDocument loads a JSON document from path. A missing file or malformed
// content yields fallback: callers treat that as "no prior state", not as an
// error.
func ReadDocument[T any](path string, fallback T) T {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return fallback
	}
	return doc
}

// WriteDocument persists a document as pretty-printed JSON. The write goes
// through a temp file in the same directory followed by a rename so a reader
// never observes a half-written document.
func WriteDocument(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write document %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace document %s: %w", filepath.Base(path), err)
	}
	return nil
}
