package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileKV is the default [KV] implementation: an in-memory map persisted as a
// single JSON file after every mutation. The file holds all collections and
// scalar settings of one profile, so the dataset stays small enough that
// whole-file rewrites are cheap.
type fileKV struct {
	path     string
	inMemory bool

	mu    sync.RWMutex
	items map[string]string
}

// NewFileKV opens (or creates) a JSON-file backed key/value store at path.
// The special path ":memory:" keeps the store purely in memory, which is
// used by tests.
func NewFileKV(path string) (KV, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &fileKV{
		path:     path,
		inMemory: path == ":memory:",
		items:    make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileKV) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *fileKV) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return s.persist()
}

func (s *fileKV) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	return s.persist()
}

func (s *fileKV) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local store file: %w", err)
	}

	items := make(map[string]string)
	if err = json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode local store file: %w", err)
	}

	s.items = items
	return nil
}

// persist writes the whole map back to disk. Caller must hold s.mu.
func (s *fileKV) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local store dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local store file: %w", err)
	}

	return nil
}
