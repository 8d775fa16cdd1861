// Package storage keeps generated media on the local filesystem under the
// static directory and optionally mirrors finished files to object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"studio/config"

	"github.com/rs/zerolog"
)

// Mirror is a remote copy of finished media, satisfied by common.S3
type Mirror interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ErrNotFound is returned by Locate when no media file has the given name
var ErrNotFound = errors.New("storage: file not found")

// Store persists media under root/{images,audio,videos}
type Store struct {
	root   string
	mirror Mirror
	logger zerolog.Logger
}

// New creates the media directories below root. mirror may be nil.
func New(root string, mirror Mirror, logger zerolog.Logger) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage: root is required")
	}
	for _, dir := range []string{config.ImagesDir, config.AudioDir, config.VideosDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("storage: ensure %s: %w", dir, err)
		}
	}
	return &Store{
		root:   root,
		mirror: mirror,
		logger: logger.With().Str("component", "storage").Logger(),
	}, nil
}

// Root is the directory served under the static route
func (s *Store) Root() string { return s.root }

// Path returns the local path of name inside dir
func (s *Store) Path(dir, name string) (string, error) {
	key, err := sanitizeKey(dir + "/" + name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// URL returns the public URL of name inside dir
func (s *Store) URL(dir, name string) string {
	return config.StaticRoute + "/" + dir + "/" + name
}

// Write stores data as dir/name and returns its public URL
func (s *Store) Write(ctx context.Context, dir, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.Path(dir, name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return s.URL(dir, name), nil
}

// Remove deletes dir/name. A missing file is not an error.
func (s *Store) Remove(dir, name string) error {
	path, err := s.Path(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

// Locate finds a downloadable file by bare name, looking in videos first
func (s *Store) Locate(filename string) (string, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) || filename == ".." || filename == "." {
		return "", ErrNotFound
	}
	for _, dir := range []string{config.VideosDir, config.ImagesDir} {
		path := filepath.Join(s.root, dir, filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Mirror uploads dir/name to the remote mirror if one is configured and the
// object is not there yet.
func (s *Store) Mirror(ctx context.Context, dir, name, contentType string) error {
	if s.mirror == nil {
		return nil
	}
	key := dir + "/" + name

	exists, err := s.mirror.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Debug().Str("key", key).Msg("already mirrored")
		return nil
	}

	path, err := s.Path(dir, name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", key, err)
	}
	defer f.Close()

	if err := s.mirror.Put(ctx, key, f, contentType); err != nil {
		return err
	}
	s.logger.Info().Str("key", key).Msg("☁️  mirrored")
	return nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
