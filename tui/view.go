package tui

import (
	"fmt"
	"strings"

	"studio/studio"
	"studio/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenVideo:
		b.WriteString(m.videoView())
	case ScreenImage:
		b.WriteString(m.imageView())
	case ScreenGallery:
		b.WriteString(m.galleryView())
	}

	if m.publishOpen {
		b.WriteString("\n")
		b.WriteString(m.publishView())
	}

	if notice := m.renderNotice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(notice)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(m.footer()))
	return b.String()
}

func (m Model) footer() string {
	switch {
	case m.publishOpen:
		return TextFooterPublish
	case m.busy():
		return TextFooterBusy
	case m.screen == ScreenImage:
		return TextFooterImage
	case m.screen == ScreenGallery:
		return TextFooterGallery
	default:
		return TextFooterVideo
	}
}

func (m Model) videoView() string {
	var b strings.Builder

	b.WriteString(m.story.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("🎙  Voice: %s", m.Voice())))
	b.WriteString("\n\n")

	switch {
	case m.videoBusy:
		b.WriteString(m.spinner.View() + " " + StatusStyle.Render("Generating..."))
	default:
		b.WriteString(HighlightStyle.Render(TextGenerateVideo))
	}
	b.WriteString("\n\n")

	if m.videoBusy || (m.videoDone && !m.revealed) {
		b.WriteString(InfoStyle.Render(studio.StepLabel(m.progress)))
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(m.progress.Percent / 100))
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.progress.Status))
		b.WriteString("\n")
	}

	if m.revealed && m.videoURL != "" {
		b.WriteString(BoxStyle.Render(m.resultBox("🎬 Your movie", m.videoURL, m.videoMedia)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) imageView() string {
	var b strings.Builder

	b.WriteString(m.imagePrompt.View())
	b.WriteString("\n\n")

	if m.imageBusy {
		b.WriteString(m.spinner.View() + " " + StatusStyle.Render("Painting..."))
	} else {
		b.WriteString(HighlightStyle.Render(TextGenerateImage))
	}
	b.WriteString("\n\n")

	if m.imageShown != "" {
		b.WriteString(BoxStyle.Render(m.resultBox("🖼  Your image", m.imageShown, m.imageMedia)))
		b.WriteString("\n")
	}
	return b.String()
}

// resultBox shows a finished media item. media is the raw URL the download
// link is derived from.
func (m Model) resultBox(title, shown, media string) string {
	var b strings.Builder
	b.WriteString(HighlightStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(shown)
	b.WriteString("\n")
	if media != "" {
		b.WriteString(InfoStyle.Render("Download: " + m.gallery.Resolve(studio.DownloadPath(media))))
	}
	return b.String()
}

func (m Model) publishView() string {
	var b strings.Builder

	kind := "nothing yet"
	if artifact := m.ctrl.LastArtifact(); !artifact.IsEmpty() {
		kind = artifact.Kind().Label()
	}
	b.WriteString(HighlightStyle.Render("Publish to the Public Gallery"))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Publishing: " + kind))
	b.WriteString("\n\n")

	for i := range m.fields {
		b.WriteString(m.fields[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HighlightStyle.Render(m.publishLabel))
	return BoxStyle.Render(b.String())
}

func (m Model) galleryView() string {
	var b strings.Builder

	for _, kind := range []types.MediaKind{types.KindImage, types.KindVideo} {
		label := strings.ToUpper(kind.Label()[:1]) + kind.Label()[1:] + "s"
		if kind == m.galleryKind {
			b.WriteString(ActiveTabStyle.Render(label))
		} else {
			b.WriteString(TabStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	if m.galleryBusy {
		b.WriteString(m.spinner.View() + " Loading...")
		return b.String()
	}
	if len(m.galleryEntries) == 0 {
		b.WriteString(InfoStyle.Render(TextGalleryEmpty))
		return b.String()
	}

	for _, e := range m.galleryEntries {
		b.WriteString(StatusStyle.Render(e.Title))
		b.WriteString(InfoStyle.Render("  " + e.Timestamp))
		b.WriteString("\n")
		if e.Description != "" {
			b.WriteString("  " + e.Description + "\n")
		}
		if e.Tags != "" {
			b.WriteString(InfoStyle.Render("  #" + strings.ReplaceAll(e.Tags, ",", " #")))
			b.WriteString("\n")
		}
		b.WriteString(InfoStyle.Render("  " + m.gallery.Resolve(e.FileURL)))
		b.WriteString("\n\n")
	}
	return b.String()
}
