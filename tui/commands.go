package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studio/studio"
	"studio/types"

	tea "github.com/charmbracelet/bubbletea"
)

// submitVideo runs the video flow and streams its progress into ch. ch is
// closed once the flow has returned, so no update can follow the outcome.
func submitVideo(ctx context.Context, ctrl *studio.Controller, run int, req types.GenerationRequest, ch chan<- types.ProgressState) tea.Cmd {
	return func() tea.Msg {
		defer close(ch)
		result, err := ctrl.SubmitVideoRequest(ctx, req.Prompt, req.Voice, func(p types.ProgressState) {
			select {
			case ch <- p:
			case <-ctx.Done():
			}
		})
		return VideoSettledMsg{Run: run, Result: result, Err: err}
	}
}

// waitForProgress delivers the next progress update of a run
func waitForProgress(run int, ch <-chan types.ProgressState) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return progressClosedMsg{Run: run}
		}
		return VideoProgressMsg{Run: run, State: p}
	}
}

// revealAfter waits before showing the finished video
func revealAfter(d time.Duration, run int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return VideoRevealMsg{Run: run}
	})
}

func submitImage(ctx context.Context, ctrl *studio.Controller, req types.GenerationRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := ctrl.SubmitImageRequest(ctx, req.Prompt)
		return ImageSettledMsg{Result: result, Err: err}
	}
}

func submitPublish(ctx context.Context, ctrl *studio.Controller, title, description, tags string) tea.Cmd {
	kind := ctrl.LastArtifact().Kind()
	return func() tea.Msg {
		err := ctrl.SubmitPublish(ctx, title, description, tags)
		return PublishSettledMsg{Kind: kind, Err: err}
	}
}

func loadGallery(ctx context.Context, api Gallery, kind types.MediaKind) tea.Cmd {
	return func() tea.Msg {
		entries, err := api.Gallery(ctx, kind)
		return GalleryLoadedMsg{Kind: kind, Entries: entries, Err: err}
	}
}

// downloadArtifact saves the artifact into dir under its server file name
func downloadArtifact(ctx context.Context, api Gallery, artifact types.Artifact, dir string) tea.Cmd {
	return func() tea.Msg {
		if artifact.IsEmpty() {
			return DownloadedMsg{Err: fmt.Errorf("nothing generated yet")}
		}
		name := studio.Filename(artifact.URL())
		path := filepath.Join(dir, name)

		f, err := os.Create(path)
		if err != nil {
			return DownloadedMsg{Err: fmt.Errorf("failed to create %s: %w", path, err)}
		}
		defer f.Close()

		if _, err := api.Download(ctx, name, f); err != nil {
			_ = os.Remove(path)
			return DownloadedMsg{Err: err}
		}
		return DownloadedMsg{Path: path}
	}
}

func play(player Player, url string) tea.Cmd {
	return func() tea.Msg {
		return PlayerMsg{Err: player.Play(url)}
	}
}
