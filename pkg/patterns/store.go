package patterns

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the default location of the backing document.
const DefaultPath = "patterns/patterns.json"

// ErrCorrupt indicates the backing file exists but does not parse. There is
// no auto-repair; callers decide whether to clear and relearn.
var ErrCorrupt = errors.New("patterns: corrupt document")

var timeNow = time.Now // injected for testability

// Store is the read/write interface for the persisted pattern collection.
type Store interface {
	Load() (*Collection, error)
	Save(c *Collection) error
	Update(newPatterns map[string]Value, sources []string) (*Collection, error)
	Clear() error
	Summary() (string, bool, error)
}

// FileStore implements Store against a single pretty-printed JSON document.
// It owns the backing path: in-process writers serialize on the store mutex
// and every save is a write-to-temp-then-rename, so a crash never leaves a
// half-written document. Concurrent writers in separate processes still race
// at whole-document granularity (last writer wins).
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store for the given path. An empty path selects
// DefaultPath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the current collection. A missing backing file is not an error:
// it yields a fresh empty scaffold. A file that exists but fails to parse is
// surfaced as ErrCorrupt.
func (s *FileStore) Load() (*Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() (*Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCollection(), nil
		}
		return nil, fmt.Errorf("patterns: read %s: %w", s.path, err)
	}

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if c.Sources == nil {
		c.Sources = []string{}
	}
	if c.Patterns == nil {
		c.Patterns = make(map[string]Value)
	}
	return &c, nil
}

// Save stamps the update time and overwrites the backing file with the full
// document. The containing directory is created if needed.
func (s *FileStore) Save(c *Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(c)
}

func (s *FileStore) saveLocked(c *Collection) error {
	// updated_at must never move backwards across saves, even under clock skew.
	if now := timeNow(); now.After(c.UpdatedAt) {
		c.UpdatedAt = now
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("patterns: create directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("patterns: encode: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("patterns: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("patterns: atomic rename %s: %w", s.path, err)
	}
	return nil
}

// Update merges a batch of newly extracted patterns and their contributing
// sources into the stored collection and persists the result. Merging happens
// entirely in memory and is committed by a single terminal save; failures
// from load or save propagate unchanged with no partial state on disk.
func (s *FileStore) Update(newPatterns map[string]Value, sources []string) (*Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	c.Sources = appendSources(c.Sources, sources)
	c.Patterns = MergePatterns(c.Patterns, newPatterns)

	if err := s.saveLocked(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear resets the stored collection to the empty scaffold and persists it.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(NewCollection())
}

// Summary loads the collection and projects the human-readable digest.
// ok is false when nothing has been learned yet. Load failures, including a
// corrupt backing document, propagate rather than masquerading as empty.
func (s *FileStore) Summary() (string, bool, error) {
	c, err := s.Load()
	if err != nil {
		return "", false, err
	}
	summary, ok := Summarize(c)
	return summary, ok, nil
}
