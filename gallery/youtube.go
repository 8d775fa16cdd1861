package gallery

import (
	"context"
	"fmt"
	"os"
	"strings"

	"studio/config"
	"studio/types"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeMirror uploads published videos to a YouTube channel
type YouTubeMirror struct {
	service *youtube.Service
	logger  zerolog.Logger
}

// NewYouTubeMirror authenticates with a service account key file
func NewYouTubeMirror(ctx context.Context, serviceAccountFile string, logger zerolog.Logger) (*YouTubeMirror, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &YouTubeMirror{
		service: service,
		logger:  logger.With().Str("component", "youtube").Logger(),
	}, nil
}

// Upload sends the video at path with metadata taken from entry and returns
// the YouTube video id.
func (y *YouTubeMirror) Upload(ctx context.Context, path string, entry types.GalleryEntry) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil {
		y.logger.Info().
			Str("path", path).
			Float64("mb", float64(info.Size())/(1024*1024)).
			Msg("📤 uploading")
	}

	call := y.service.Videos.Insert([]string{"snippet", "status"}, Metadata(entry)).
		Context(ctx).
		Media(file)

	response, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	y.logger.Info().Str("entry", entry.ID).Str("youtube_id", response.Id).Msg("✅ uploaded")
	return response.Id, nil
}

// Metadata maps a gallery entry to a YouTube video resource
func Metadata(entry types.GalleryEntry) *youtube.Video {
	title := entry.Title
	if r := []rune(title); len(r) > config.MaxTitleLength {
		title = string(r[:config.MaxTitleLength-3]) + "..."
	}

	var tags []string
	for _, tag := range strings.Split(entry.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: entry.Description,
			Tags:        tags,
			CategoryId:  config.YouTubeCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}
}
