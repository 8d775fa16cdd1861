package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"studio/common"
	"studio/config"
	"studio/events"
	"studio/types"
)

// galleryfeed follows the publish topic and logs every new gallery entry
func main() {
	config.LoadEnv()

	cfg, err := config.LoadServer()
	if err != nil {
		bootLogger := common.NewLogger("production", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := common.NewLogger(cfg.AppEnv, os.Stdout)

	group := flag.String("group", config.GalleryFeedGroupID, "Kafka consumer group")
	kind := flag.String("kind", "", "Only show entries of this type (photo or video)")
	flag.Parse()

	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal().Msg("KAFKA_BOOTSTRAP_SERVERS is not set")
	}

	handler := &events.TypedHandler[types.GalleryEntry]{
		Validate: func(e *types.GalleryEntry) bool {
			if e.ID == "" {
				return false
			}
			return *kind == "" || strings.EqualFold(string(e.Type), *kind)
		},
		Process: func(ctx context.Context, e *types.GalleryEntry) error {
			logger.Info().
				Str("id", e.ID).
				Str("type", string(e.Type)).
				Str("title", e.Title).
				Str("file_url", e.FileURL).
				Str("tags", e.Tags).
				Str("timestamp", e.Timestamp).
				Msg("📢 published")
			return nil
		},
		AlwaysMark: true,
	}

	consumer, err := events.NewConsumer(events.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: *group,
		Handler: handler,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("failed to create consumer")
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to start consumer")
	}
	<-ctx.Done()
	logger.Info().Msg("shutting down")
}
