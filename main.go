package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio/api"
	"studio/common"
	"studio/config"
	"studio/events"
	"studio/gallery"
	"studio/generation"
	"studio/storage"
	"studio/video"

	"github.com/rs/zerolog"
)

func main() {
	config.LoadEnv()

	cfg, err := config.LoadServer()
	if err != nil {
		bootLogger := common.NewLogger("production", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := common.NewLogger(cfg.AppEnv, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mirror storage.Mirror
	if cfg.S3Bucket != "" {
		s3, err := common.NewS3(ctx, common.S3Config{
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Region:       cfg.S3Region,
			Profile:      cfg.S3Profile,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize s3 mirror")
		}
		mirror = s3
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("mirroring media to s3")
	}

	files, err := storage.New(cfg.StaticDir, mirror, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare static directory")
	}

	store, closeStore := openGallery(ctx, cfg, logger)
	defer closeStore()

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(events.ProducerConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic}, logger)
		if err != nil {
			logger.Fatal().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("failed to create kafka producer")
		}
		publisher = p
	}
	defer publisher.Close()

	var uploader api.VideoUploader
	if cfg.YouTubeServiceAccount != "" {
		yt, err := gallery.NewYouTubeMirror(ctx, cfg.YouTubeServiceAccount, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize youtube mirror")
		}
		uploader = yt
	}

	var translator generation.Translator = generation.Passthrough{}
	if cfg.CohereAPIKey != "" {
		translator = generation.NewCohereTranslator(cfg.CohereAPIKey, cfg.CohereModel, logger)
	}
	var narrator generation.Narrator
	if cfg.TTSURL != "" {
		narrator = generation.NewHTTPNarrator(cfg.TTSURL)
	} else {
		logger.Warn().Msg("TTS_URL not set, stories will be silent")
	}

	service := generation.NewService(generation.Config{
		Translator: translator,
		Images:     generation.NewImageProvider(cfg.ImageProviderURL, logger),
		Narrator:   narrator,
		Composer:   video.NewComposer(os.TempDir(), logger),
		Store:      files,
	}, logger)

	router := api.NewRouter(api.Deps{
		Generator: service,
		Gallery:   store,
		Files:     files,
		Events:    publisher,
		Uploader:  uploader,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logger.Info().
		Str("addr", srv.Addr).
		Str("static", cfg.StaticDir).
		Str("gallery", cfg.GalleryBackend).
		Msg("studio backend listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}

func openGallery(ctx context.Context, cfg *config.ServerConfig, logger zerolog.Logger) (gallery.Store, func()) {
	if cfg.GalleryBackend != "redis" {
		return gallery.NewJSONStore(cfg.GalleryFile, logger), func() {}
	}

	store, err := gallery.NewRedisStore(ctx, gallery.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Key:      cfg.GalleryKey,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	return store, func() { _ = store.Close() }
}
