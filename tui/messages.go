package tui

import "studio/types"

// VideoProgressMsg carries one simulated progress update of video run Run
type VideoProgressMsg struct {
	Run   int
	State types.ProgressState
}

// progressClosedMsg is sent when a run's progress channel has been drained
type progressClosedMsg struct {
	Run int
}

// VideoSettledMsg is sent when the video request has an outcome
type VideoSettledMsg struct {
	Run    int
	Result types.GenerationResult
	Err    error
}

// VideoRevealMsg swaps the finished progress bar for the result
type VideoRevealMsg struct {
	Run int
}

// ImageSettledMsg is sent when the image request has an outcome
type ImageSettledMsg struct {
	Result types.GenerationResult
	Err    error
}

// PublishSettledMsg is sent when the publish request has an outcome
type PublishSettledMsg struct {
	Kind types.MediaKind
	Err  error
}

// GalleryLoadedMsg carries a gallery listing
type GalleryLoadedMsg struct {
	Kind    types.MediaKind
	Entries []types.GalleryEntry
	Err     error
}

// DownloadedMsg reports a finished download
type DownloadedMsg struct {
	Path string
	Err  error
}

// PlayerMsg reports the outcome of starting playback
type PlayerMsg struct {
	Err error
}
