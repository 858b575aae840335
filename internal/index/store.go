// Package index holds the persistent checksum index: a JSON key-value
// file mapping content checksums to the relative destination path the
// content was imported under.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the index file kept inside the output root.
const FileName = "photohash.db"

// Store is a checksum index backed by a JSON file. Every successful
// Record dumps the whole map back to disk, so an entry is durable
// before the pipeline reports success for its item.
type Store struct {
	mu       sync.Mutex
	path     string
	entries  map[string]string
	readOnly bool
}

// Open loads the index from outputDir, creating the output directory
// and an empty index file when absent. A corrupt file is treated as an
// empty store. An error here means the store cannot be read or written
// at all and the run must not start.
func Open(outputDir string) (*Store, error) {
	s, err := load(outputDir, false)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}
	if err := s.dump(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the index without touching the disk afterwards. Used by
// dry runs, which must not create the output directory or the file.
func Load(outputDir string) (*Store, error) {
	return load(outputDir, true)
}

func load(outputDir string, readOnly bool) (*Store, error) {
	path := filepath.Join(outputDir, FileName)
	entries := map[string]string{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &entries); jsonErr != nil {
			// Corrupt index: start over rather than abort the run.
			entries = map[string]string{}
		}
	case errors.Is(err, fs.ErrNotExist):
		// Fresh library.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Store{path: path, entries: entries, readOnly: readOnly}, nil
}

// Lookup returns the destination path recorded for sum.
func (s *Store) Lookup(sum string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.entries[sum]
	return path, ok
}

// Record maps sum to path and persists the store. An existing mapping
// wins: recording the same path again is a no-op, recording a different
// path leaves the store untouched and returns the conflict.
func (s *Store) Record(sum, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[sum]; ok {
		if prev == path {
			return nil
		}
		return fmt.Errorf("checksum %s already recorded as %s", sum, prev)
	}
	if s.readOnly {
		return errors.New("store is read-only")
	}

	s.entries[sum] = path
	if err := s.dump(); err != nil {
		delete(s.entries, sum)
		return err
	}
	return nil
}

// Len reports the number of recorded entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) dump() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
