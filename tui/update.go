package tui

import (
	"fmt"
	"time"

	"studio/config"
	"studio/story"
	"studio/studio"
	"studio/types"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// progressBuffer bounds the updates queued between the controller and the UI
const progressBuffer = 8

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-8, 20), 72)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case VideoProgressMsg:
		return m.handleVideoProgress(msg)
	case progressClosedMsg:
		return m, nil
	case VideoSettledMsg:
		return m.handleVideoSettled(msg)
	case VideoRevealMsg:
		if msg.Run != m.videoRun || !m.videoDone {
			return m, nil
		}
		m.revealed = true
		return m, play(m.player, m.videoURL)
	case ImageSettledMsg:
		return m.handleImageSettled(msg)
	case PublishSettledMsg:
		return m.handlePublishSettled(msg)
	case GalleryLoadedMsg:
		return m.handleGalleryLoaded(msg)
	case DownloadedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("download failed")
			return m.setNotice(fmt.Sprintf("Download failed: %v", msg.Err), true), nil
		}
		return m.setNotice("Saved to "+msg.Path, false), nil
	case PlayerMsg:
		if msg.Err != nil {
			return m.setNotice(msg.Err.Error(), true), nil
		}
		return m, nil
	}
	return m.forwardToInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.publishOpen {
		return m.handlePublishKeys(msg)
	}

	switch msg.String() {
	case "tab":
		return m.switchScreen((m.screen + 1) % Screen(len(screenNames)))
	case "shift+tab":
		return m.switchScreen((m.screen + Screen(len(screenNames)) - 1) % Screen(len(screenNames)))
	case "esc":
		m.notice = Notice{}
		m.ctrl.Retry(studio.FlowVideo)
		m.ctrl.Retry(studio.FlowImage)
		m.ctrl.Retry(studio.FlowPublish)
		return m, nil
	case "ctrl+p":
		return m.openPublish()
	case "ctrl+d":
		artifact := m.ctrl.LastArtifact()
		if artifact.IsEmpty() {
			return m.setNotice(TextNothingSaved, true), nil
		}
		return m, downloadArtifact(m.ctx, m.gallery, artifact, m.cfg.DownloadDir)
	case "ctrl+o":
		artifact := m.ctrl.LastArtifact()
		if artifact.IsEmpty() {
			return m.setNotice(TextNothingSaved, true), nil
		}
		return m, play(m.player, m.gallery.Resolve(artifact.URL()))
	}

	switch m.screen {
	case ScreenVideo:
		switch msg.String() {
		case "ctrl+s":
			return m.submitVideo()
		case "ctrl+n":
			m.voiceIndex = (m.voiceIndex + 1) % len(config.Voices)
			return m, nil
		}
	case ScreenImage:
		if msg.String() == "enter" {
			return m.submitImage()
		}
	case ScreenGallery:
		switch msg.String() {
		case "left", "right":
			if m.galleryKind == types.KindImage {
				m.galleryKind = types.KindVideo
			} else {
				m.galleryKind = types.KindImage
			}
			return m.refreshGallery()
		case "ctrl+g":
			return m.refreshGallery()
		}
		return m, nil
	}
	return m.forwardToInput(msg)
}

func (m Model) switchScreen(s Screen) (tea.Model, tea.Cmd) {
	m.screen = s
	m.story.Blur()
	m.imagePrompt.Blur()

	switch s {
	case ScreenVideo:
		return m, m.story.Focus()
	case ScreenImage:
		return m, m.imagePrompt.Focus()
	default:
		return m.refreshGallery()
	}
}

// forwardToInput hands msg to the focused text input
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.publishOpen:
		m.fields[m.publishFocus], cmd = m.fields[m.publishFocus].Update(msg)
	case m.screen == ScreenVideo:
		m.story, cmd = m.story.Update(msg)
	case m.screen == ScreenImage:
		m.imagePrompt, cmd = m.imagePrompt.Update(msg)
	}
	return m, cmd
}

func (m Model) submitVideo() (tea.Model, tea.Cmd) {
	if m.videoBusy {
		return m, nil
	}
	ch := make(chan types.ProgressState, progressBuffer)
	req := types.GenerationRequest{Kind: types.KindVideo, Prompt: m.story.Value(), Voice: m.Voice()}

	m.videoRun++
	m.videoBusy = true
	m.videoDone = false
	m.revealed = false
	m.videoURL = ""
	m.videoMedia = ""
	m.progress = studio.InitialProgress(story.SceneCount(req.Prompt))
	m.progressCh = ch
	m.notice = Notice{}

	return m, tea.Batch(
		submitVideo(m.ctx, m.ctrl, m.videoRun, req, ch),
		waitForProgress(m.videoRun, ch),
	)
}

func (m Model) handleVideoProgress(msg VideoProgressMsg) (tea.Model, tea.Cmd) {
	if msg.Run != m.videoRun {
		return m, nil
	}
	// Updates still queued when the outcome arrived are stale.
	if m.videoBusy {
		m.progress = msg.State
	}
	return m, waitForProgress(msg.Run, m.progressCh)
}

func (m Model) handleVideoSettled(msg VideoSettledMsg) (tea.Model, tea.Cmd) {
	if msg.Run != m.videoRun {
		return m, nil
	}
	m.videoBusy = false

	if msg.Err != nil {
		m.progress = types.ProgressState{}
		if !studio.IsValidation(msg.Err) {
			m.logger.Warn().Err(msg.Err).Msg("video request failed")
		}
		return m.setNotice(studio.UserMessage(studio.FlowVideo, msg.Err), true), nil
	}

	m.progress = studio.FinalProgress(m.progress.TotalSteps)
	m.videoDone = true
	m.videoMedia = msg.Result.MediaURL
	m.videoURL = m.gallery.Resolve(studio.CacheBust(msg.Result.MediaURL, time.Now()))
	m = m.setNotice(studio.StatusReady, false)
	return m, revealAfter(m.cfg.RevealDelay, msg.Run)
}

func (m Model) submitImage() (tea.Model, tea.Cmd) {
	if m.imageBusy {
		return m, nil
	}
	m.imageBusy = true
	m.imageShown = ""
	m.imageMedia = ""
	m.notice = Notice{}
	return m, submitImage(m.ctx, m.ctrl, types.GenerationRequest{Kind: types.KindImage, Prompt: m.imagePrompt.Value()})
}

func (m Model) handleImageSettled(msg ImageSettledMsg) (tea.Model, tea.Cmd) {
	m.imageBusy = false
	if msg.Err != nil {
		if !studio.IsValidation(msg.Err) {
			m.logger.Warn().Err(msg.Err).Msg("image request failed")
		}
		return m.setNotice(studio.UserMessage(studio.FlowImage, msg.Err), true), nil
	}
	m.imageMedia = msg.Result.MediaURL
	m.imageShown = m.gallery.Resolve(studio.CacheBust(msg.Result.MediaURL, time.Now()))
	return m.setNotice(TextImageReady, false), nil
}

func (m Model) openPublish() (tea.Model, tea.Cmd) {
	m.publishOpen = true
	m.publishFocus = fieldTitle
	m.story.Blur()
	m.imagePrompt.Blur()
	return m, m.fields[fieldTitle].Focus()
}

func (m Model) closePublish() Model {
	m.publishOpen = false
	for i := range m.fields {
		m.fields[i].Blur()
	}
	switch m.screen {
	case ScreenVideo:
		m.story.Focus()
	case ScreenImage:
		m.imagePrompt.Focus()
	}
	return m
}

func (m Model) handlePublishKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.publishBusy {
			return m, nil
		}
		return m.closePublish(), nil
	case "tab", "shift+tab", "down", "up":
		m.fields[m.publishFocus].Blur()
		if msg.String() == "tab" || msg.String() == "down" {
			m.publishFocus = (m.publishFocus + 1) % fieldCount
		} else {
			m.publishFocus = (m.publishFocus + fieldCount - 1) % fieldCount
		}
		return m, m.fields[m.publishFocus].Focus()
	case "enter":
		if m.publishBusy {
			return m, nil
		}
		m.publishBusy = true
		m.publishLabel = studio.LabelPublishing
		m.notice = Notice{}
		return m, submitPublish(m.ctx, m.ctrl,
			m.fields[fieldTitle].Value(),
			m.fields[fieldDescription].Value(),
			m.fields[fieldTags].Value(),
		)
	}
	return m.forwardToInput(msg)
}

func (m Model) handlePublishSettled(msg PublishSettledMsg) (tea.Model, tea.Cmd) {
	m.publishBusy = false
	m.publishLabel = studio.LabelPublish

	if msg.Err != nil {
		if !studio.IsValidation(msg.Err) {
			m.logger.Warn().Err(msg.Err).Msg("publish failed")
		}
		return m.setNotice(studio.UserMessage(studio.FlowPublish, msg.Err), true), nil
	}

	for i := range m.fields {
		m.fields[i].Reset()
	}
	m = m.closePublish()
	m = m.setNotice(studio.PublishedMessage(msg.Kind), false)
	if msg.Kind == m.galleryKind {
		return m, loadGallery(m.ctx, m.gallery, msg.Kind)
	}
	return m, nil
}

func (m Model) refreshGallery() (tea.Model, tea.Cmd) {
	m.galleryBusy = true
	return m, loadGallery(m.ctx, m.gallery, m.galleryKind)
}

func (m Model) handleGalleryLoaded(msg GalleryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Kind != m.galleryKind {
		return m, nil
	}
	m.galleryBusy = false
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("gallery load failed")
		return m.setNotice(fmt.Sprintf("Could not load gallery: %v", msg.Err), true), nil
	}
	m.galleryEntries = msg.Entries
	return m, nil
}
