// Package gallery stores the entries of the public gallery.
package gallery

import (
	"context"
	"strings"
	"time"

	"studio/config"
	"studio/types"

	"github.com/google/uuid"
)

// Store persists published entries
type Store interface {
	Add(ctx context.Context, entry types.GalleryEntry) error
	// List returns the entries of kind, newest first
	List(ctx context.Context, kind types.MediaKind) ([]types.GalleryEntry, error)
}

// NewEntry builds a gallery entry for a publish submission
func NewEntry(sub types.PublishSubmission, now time.Time) types.GalleryEntry {
	return types.GalleryEntry{
		ID:          strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		Type:        sub.Kind,
		Title:       sub.Title,
		Description: sub.Description,
		Tags:        sub.Tags,
		FileURL:     sub.FileURL,
		Timestamp:   now.Format(config.GalleryTimeFormat),
	}
}

// newestFirst returns the entries of kind in reverse insertion order
func newestFirst(entries []types.GalleryEntry, kind types.MediaKind) []types.GalleryEntry {
	out := make([]types.GalleryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Type == kind {
			out = append(out, entries[i])
		}
	}
	return out
}
