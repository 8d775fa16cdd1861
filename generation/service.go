// Package generation produces the images and narrated story videos served by
// the studio backend.
package generation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"studio/config"
	"studio/story"
	"studio/storage"
	"studio/video"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrImageGeneration is returned when no scene of a story got an image
var ErrImageGeneration = errors.New("AI image generation failed")

// ErrNoScenes is returned when a story has no usable scene
var ErrNoScenes = errors.New("story has no scenes")

// Composer joins prepared scenes into a video file
type Composer interface {
	Compose(ctx context.Context, scenes []video.Scene, outputPath string) error
}

// Service generates media into the store
type Service struct {
	translator Translator
	images     ImageSource
	narrator   Narrator
	composer   Composer
	store      *storage.Store
	logger     zerolog.Logger
}

// Config wires the collaborators of a Service. Narrator may be nil, in which
// case scenes are silent; Translator defaults to Passthrough.
type Config struct {
	Translator Translator
	Images     ImageSource
	Narrator   Narrator
	Composer   Composer
	Store      *storage.Store
}

// NewService creates a generation service
func NewService(cfg Config, logger zerolog.Logger) *Service {
	if cfg.Translator == nil {
		cfg.Translator = Passthrough{}
	}
	return &Service{
		translator: cfg.Translator,
		images:     cfg.Images,
		narrator:   cfg.Narrator,
		composer:   cfg.Composer,
		store:      cfg.Store,
		logger:     logger.With().Str("component", "generation").Logger(),
	}
}

// GenerateImage renders prompt and returns the public URL of the image
func (s *Service) GenerateImage(ctx context.Context, prompt string) (string, error) {
	name := fmt.Sprintf("art_%s.png", shortID(8))

	data, err := s.images.Render(ctx, s.translator.Translate(ctx, prompt))
	if err != nil {
		return "", err
	}

	url, err := s.store.Write(ctx, config.ImagesDir, name, data)
	if err != nil {
		return "", err
	}
	s.mirror(ctx, config.ImagesDir, name, "image/png")

	s.logger.Info().Str("url", url).Int("bytes", len(data)).Msg("🎨 image generated")
	return url, nil
}

// GenerateVideo renders one scene per sentence of text, narrated with voice,
// and returns the public URL of the finished video. Scenes whose image fails
// are left out.
func (s *Service) GenerateVideo(ctx context.Context, text, voice string) (string, error) {
	scenes := story.SplitScenes(text)
	if len(scenes) == 0 {
		return "", ErrNoScenes
	}
	if voice == "" {
		voice = config.DefaultVoice
	}
	sid := shortID(6)
	logger := s.logger.With().Str("session", sid).Logger()
	logger.Info().Int("scenes", len(scenes)).Str("voice", voice).Msg("🎬 generating video")

	prepared := make([]*video.Scene, len(scenes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.MaxConcurrentScenes)

	for i, text := range scenes {
		g.Go(func() error {
			scene, err := s.prepareScene(gctx, sid, i, text, voice)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn().Err(err).Int("scene", i).Msg("skipping scene")
				return nil
			}
			prepared[i] = scene
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	ordered := make([]video.Scene, 0, len(prepared))
	for _, scene := range prepared {
		if scene != nil {
			ordered = append(ordered, *scene)
		}
	}
	if len(ordered) == 0 {
		return "", ErrImageGeneration
	}

	name := fmt.Sprintf("story_%s.mp4", sid)
	outputPath, err := s.store.Path(config.VideosDir, name)
	if err != nil {
		return "", err
	}
	if err := s.composer.Compose(ctx, ordered, outputPath); err != nil {
		s.discard(ordered)
		return "", err
	}
	s.mirror(ctx, config.VideosDir, name, "video/mp4")

	url := s.store.URL(config.VideosDir, name)
	logger.Info().Str("url", url).Int("scenes", len(ordered)).Msg("✅ video generated")
	return url, nil
}

// prepareScene stores the image and narration of scene i
func (s *Service) prepareScene(ctx context.Context, sid string, i int, text, voice string) (*video.Scene, error) {
	data, err := s.images.Render(ctx, s.translator.Translate(ctx, text))
	if err != nil {
		return nil, err
	}
	imageName := fmt.Sprintf("vid_%s_%d.png", sid, i)
	if _, err := s.store.Write(ctx, config.ImagesDir, imageName, data); err != nil {
		return nil, err
	}
	imagePath, err := s.store.Path(config.ImagesDir, imageName)
	if err != nil {
		return nil, err
	}
	scene := &video.Scene{ImagePath: imagePath}

	if s.narrator == nil {
		return scene, nil
	}
	audio, err := s.narrator.Narrate(ctx, text, voice)
	if err != nil {
		s.logger.Warn().Err(err).Str("session", sid).Int("scene", i).Msg("narration failed, scene will be silent")
		return scene, nil
	}
	audioName := fmt.Sprintf("aud_%s_%d.mp3", sid, i)
	if _, err := s.store.Write(ctx, config.AudioDir, audioName, audio); err != nil {
		return nil, err
	}
	if scene.AudioPath, err = s.store.Path(config.AudioDir, audioName); err != nil {
		return nil, err
	}
	return scene, nil
}

// discard removes the stored files of scenes that never made it into a video
func (s *Service) discard(scenes []video.Scene) {
	for _, scene := range scenes {
		if err := s.store.Remove(config.ImagesDir, filepath.Base(scene.ImagePath)); err != nil {
			s.logger.Warn().Err(err).Str("file", scene.ImagePath).Msg("failed to remove scene image")
		}
		if scene.AudioPath == "" {
			continue
		}
		if err := s.store.Remove(config.AudioDir, filepath.Base(scene.AudioPath)); err != nil {
			s.logger.Warn().Err(err).Str("file", scene.AudioPath).Msg("failed to remove scene audio")
		}
	}
}

func (s *Service) mirror(ctx context.Context, dir, name, contentType string) {
	if err := s.store.Mirror(ctx, dir, name, contentType); err != nil {
		s.logger.Warn().Err(err).Str("file", name).Msg("mirror upload failed")
	}
}

// shortID returns the first n hex digits of a random UUID
func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
