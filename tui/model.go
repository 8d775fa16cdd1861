package tui

import (
	"context"
	"io"

	"studio/config"
	"studio/studio"
	"studio/types"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Screen is the active tab
type Screen int

const (
	ScreenVideo Screen = iota
	ScreenImage
	ScreenGallery
)

var screenNames = []string{"🎥 Story to Video", "🎨 Text to Image", "🖼  Public Gallery"}

// Gallery is the read side of the studio backend used by the client
type Gallery interface {
	Gallery(ctx context.Context, kind types.MediaKind) ([]types.GalleryEntry, error)
	Download(ctx context.Context, filename string, w io.Writer) (int64, error)
	Resolve(path string) string
}

// Notice is the single notification line under the active screen
type Notice struct {
	Text  string
	Error bool
}

// publishField indexes the publish form inputs
const (
	fieldTitle = iota
	fieldDescription
	fieldTags
	fieldCount
)

// Model is the bubbletea model of the studio client
type Model struct {
	ctx     context.Context
	ctrl    *studio.Controller
	gallery Gallery
	cfg     *config.ClientConfig
	player  Player
	logger  zerolog.Logger

	screen Screen
	width  int

	// Video screen
	story      textarea.Model
	voiceIndex int
	videoRun   int
	videoBusy  bool
	videoDone  bool
	revealed   bool
	progress   types.ProgressState
	progressCh <-chan types.ProgressState
	bar        progress.Model
	videoURL   string
	videoMedia string

	// Image screen
	imagePrompt textinput.Model
	imageBusy   bool
	imageShown  string
	imageMedia  string

	spinner spinner.Model

	// Publish form
	publishOpen  bool
	publishBusy  bool
	publishLabel string
	publishFocus int
	fields       [fieldCount]textinput.Model

	// Gallery screen
	galleryKind    types.MediaKind
	galleryEntries []types.GalleryEntry
	galleryBusy    bool

	notice Notice
}

// NewModel creates the client model. ctx bounds every request it starts.
func NewModel(ctx context.Context, ctrl *studio.Controller, gallery Gallery, cfg *config.ClientConfig, player Player, logger zerolog.Logger) Model {
	story := textarea.New()
	story.Placeholder = TextVideoPlaceholder
	story.SetWidth(72)
	story.SetHeight(6)
	story.Focus()

	prompt := textinput.New()
	prompt.Placeholder = TextImagePlaceholder
	prompt.Width = 60

	var fields [fieldCount]textinput.Model
	for i, placeholder := range []string{"Title", "Description", "Tags (comma separated)"} {
		fields[i] = textinput.New()
		fields[i].Placeholder = placeholder
		fields[i].Width = 60
	}
	fields[fieldTitle].CharLimit = config.MaxTitleLength

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusStyle

	if player == nil {
		player = NewPlayer("")
	}

	return Model{
		ctx:          ctx,
		ctrl:         ctrl,
		gallery:      gallery,
		cfg:          cfg,
		player:       player,
		logger:       logger.With().Str("component", "tui").Logger(),
		screen:       ScreenVideo,
		story:        story,
		voiceIndex:   voiceIndex(cfg.Voice),
		bar:          progress.New(progress.WithGradient(barFrom, barTo)),
		imagePrompt:  prompt,
		spinner:      sp,
		publishLabel: studio.LabelPublish,
		fields:       fields,
		galleryKind:  types.KindImage,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Voice is the narration voice currently selected
func (m Model) Voice() string {
	return config.Voices[m.voiceIndex]
}

func voiceIndex(voice string) int {
	for i, v := range config.Voices {
		if v == voice {
			return i
		}
	}
	return 0
}

// busy reports whether a request the user started is still in flight
func (m Model) busy() bool {
	return m.videoBusy || m.imageBusy || m.publishBusy
}

func (m Model) setNotice(text string, isErr bool) Model {
	m.notice = Notice{Text: text, Error: isErr}
	return m
}

func (m Model) renderNotice() string {
	if m.notice.Text == "" {
		return ""
	}
	if m.notice.Error {
		return ErrorStyle.Render("❌ " + m.notice.Text)
	}
	return StatusStyle.Render(m.notice.Text)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(screenNames))
	for i, name := range screenNames {
		if Screen(i) == m.screen {
			tabs[i] = ActiveTabStyle.Render(name)
		} else {
			tabs[i] = TabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
