package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"studio/types"

	"github.com/rs/zerolog"
)

// JSONStore keeps the gallery in a single JSON file
type JSONStore struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

// NewJSONStore creates a store backed by path. The file is created on the
// first Add.
func NewJSONStore(path string, logger zerolog.Logger) *JSONStore {
	return &JSONStore{
		path:   path,
		logger: logger.With().Str("component", "gallery").Str("store", "json").Logger(),
	}
}

// Add appends entry to the file
func (s *JSONStore) Add(ctx context.Context, entry types.GalleryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("gallery: encode entries: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("gallery: ensure directory: %w", err)
		}
	}

	// Replace the file atomically
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("gallery: write entries: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("gallery: replace entries: %w", err)
	}
	return nil
}

// List implements Store
func (s *JSONStore) List(ctx context.Context, kind types.MediaKind) ([]types.GalleryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return newestFirst(s.load(), kind), nil
}

// load reads every entry. A missing or unreadable file is an empty gallery.
func (s *JSONStore) load() []types.GalleryEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Msg("failed to read gallery")
		}
		return nil
	}

	var entries []types.GalleryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn().Err(err).Msg("gallery file is corrupt, starting empty")
		return nil
	}
	return entries
}
