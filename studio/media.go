package studio

import (
	"strconv"
	"strings"
	"time"

	"studio/config"
)

// CacheBust appends a timestamp query parameter so a player or image viewer
// never shows a stale copy of a reused path.
func CacheBust(mediaURL string, t time.Time) string {
	sep := "?"
	if strings.Contains(mediaURL, "?") {
		sep = "&"
	}
	return mediaURL + sep + "t=" + strconv.FormatInt(t.UnixMilli(), 10)
}

// Filename returns the last path segment of a media URL
func Filename(mediaURL string) string {
	if i := strings.IndexAny(mediaURL, "?#"); i >= 0 {
		mediaURL = mediaURL[:i]
	}
	if i := strings.LastIndex(mediaURL, "/"); i >= 0 {
		return mediaURL[i+1:]
	}
	return mediaURL
}

// DownloadPath is the attachment URL path for a media URL
func DownloadPath(mediaURL string) string {
	return config.DownloadRoute + "/" + Filename(mediaURL)
}
