package config

import (
	"testing"
	"time"
)

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("STUDIO_URL", "")
	t.Setenv("STUDIO_VOICE", "")
	t.Setenv("STUDIO_TICK_INTERVAL", "")
	t.Setenv("STUDIO_REVEAL_DELAY", "")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient returned error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:5000" {
		t.Fatalf("BaseURL mismatch: got %q", cfg.BaseURL)
	}
	if cfg.Voice != DefaultVoice {
		t.Fatalf("Voice mismatch: got %q want %q", cfg.Voice, DefaultVoice)
	}
	if cfg.TickInterval != ProgressTickInterval {
		t.Fatalf("TickInterval mismatch: got %v want %v", cfg.TickInterval, ProgressTickInterval)
	}
	if cfg.RevealDelay != RevealDelay {
		t.Fatalf("RevealDelay mismatch: got %v want %v", cfg.RevealDelay, RevealDelay)
	}
}

func TestLoadClientOverrides(t *testing.T) {
	t.Setenv("STUDIO_URL", "https://studio.example.com/")
	t.Setenv("STUDIO_TICK_INTERVAL", "3")
	t.Setenv("STUDIO_REVEAL_DELAY", "250ms")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient returned error: %v", err)
	}
	if cfg.BaseURL != "https://studio.example.com" {
		t.Fatalf("BaseURL mismatch: got %q", cfg.BaseURL)
	}
	if cfg.TickInterval != 3*time.Second {
		t.Fatalf("TickInterval mismatch: got %v", cfg.TickInterval)
	}
	if cfg.RevealDelay != 250*time.Millisecond {
		t.Fatalf("RevealDelay mismatch: got %v", cfg.RevealDelay)
	}
}

func TestLoadClientRejectsBadDuration(t *testing.T) {
	t.Setenv("STUDIO_TICK_INTERVAL", "soon")
	if _, err := LoadClient(); err == nil {
		t.Fatalf("expected error for invalid tick interval")
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GALLERY_BACKEND", "")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("S3_PREFIX", "/media/")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer returned error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.GalleryBackend != "json" {
		t.Fatalf("GalleryBackend mismatch: got %q", cfg.GalleryBackend)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("KafkaBrokers mismatch: %#v", cfg.KafkaBrokers)
	}
	if cfg.S3Prefix != "media/" {
		t.Fatalf("S3Prefix mismatch: got %q", cfg.S3Prefix)
	}
	if !cfg.S3UsePathStyle {
		t.Fatalf("S3UsePathStyle should be true")
	}
}

func TestLoadServerRejectsUnknownGallery(t *testing.T) {
	t.Setenv("GALLERY_BACKEND", "sqlite")
	if _, err := LoadServer(); err == nil {
		t.Fatalf("expected error for unknown gallery backend")
	}
}
