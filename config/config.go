package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from .env if present. A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// ClientConfig configures the terminal client
type ClientConfig struct {
	AppEnv       string
	BaseURL      string
	Voice        string
	TickInterval time.Duration
	RevealDelay  time.Duration
	Player       string
	DownloadDir  string
	LogFile      string
}

// LoadClient reads the client configuration from the environment
func LoadClient() (*ClientConfig, error) {
	tick, err := getEnvDuration("STUDIO_TICK_INTERVAL", ProgressTickInterval)
	if err != nil {
		return nil, err
	}
	reveal, err := getEnvDuration("STUDIO_REVEAL_DELAY", RevealDelay)
	if err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		AppEnv:       getEnv("APP_ENV", "production"),
		BaseURL:      strings.TrimRight(getEnv("STUDIO_URL", "http://localhost:5000"), "/"),
		Voice:        getEnv("STUDIO_VOICE", DefaultVoice),
		TickInterval: tick,
		RevealDelay:  reveal,
		Player:       os.Getenv("STUDIO_PLAYER"),
		DownloadDir:  getEnv("STUDIO_DOWNLOAD_DIR", "."),
		LogFile:      getEnv("STUDIO_LOG_FILE", "studio.log"),
	}

	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("STUDIO_TICK_INTERVAL must be positive")
	}
	return cfg, nil
}

// ServerConfig configures the reference backend
type ServerConfig struct {
	AppEnv    string
	Port      string
	StaticDir string

	GalleryBackend string
	GalleryFile    string
	GalleryKey     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	KafkaBrokers []string
	KafkaTopic   string

	ImageProviderURL string
	TTSURL           string
	CohereAPIKey     string
	CohereModel      string

	YouTubeServiceAccount string
}

// LoadServer reads the backend configuration from the environment
func LoadServer() (*ServerConfig, error) {
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	pathStyle, err := getEnvBool("S3_USE_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		AppEnv:                getEnv("APP_ENV", "production"),
		Port:                  getEnv("PORT", "5000"),
		StaticDir:             getEnv("STATIC_DIR", "static"),
		GalleryBackend:        strings.ToLower(getEnv("GALLERY_BACKEND", "json")),
		GalleryFile:           getEnv("GALLERY_JSON", DefaultGalleryFile),
		GalleryKey:            getEnv("GALLERY_KEY", DefaultGalleryKey),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASS"),
		RedisDB:               redisDB,
		S3Bucket:              strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:              strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:             strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:              normalizePrefix(os.Getenv("S3_PREFIX")),
		S3UsePathStyle:        pathStyle,
		KafkaBrokers:          splitList(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
		KafkaTopic:            getEnv("KAFKA_TOPIC", DefaultGalleryTopic),
		ImageProviderURL:      strings.TrimRight(getEnv("IMAGE_PROVIDER_URL", DefaultImageProviderURL), "/"),
		TTSURL:                os.Getenv("TTS_URL"),
		CohereAPIKey:          os.Getenv("COHERE_API_KEY"),
		CohereModel:           getEnv("COHERE_MODEL", "command-r"),
		YouTubeServiceAccount: os.Getenv("YOUTUBE_SERVICE_ACCOUNT"),
	}

	switch cfg.GalleryBackend {
	case "json", "redis":
	default:
		return nil, fmt.Errorf("GALLERY_BACKEND must be json or redis, got %q", cfg.GalleryBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return i, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

// getEnvDuration accepts Go durations ("15s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	return strings.Trim(prefix, "/") + "/"
}
