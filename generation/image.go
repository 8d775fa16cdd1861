package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"studio/config"

	"github.com/rs/zerolog"
)

// ErrNotAnImage is returned when the provider answers with something that
// fails the integrity check
var ErrNotAnImage = errors.New("provider did not return an image")

// ImageSource renders a prompt into image bytes
type ImageSource interface {
	Render(ctx context.Context, prompt string) ([]byte, error)
}

// ImageProvider calls a Pollinations compatible prompt endpoint
type ImageProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewImageProvider creates a provider rooted at baseURL
func NewImageProvider(baseURL string, logger zerolog.Logger) *ImageProvider {
	return &ImageProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.ImageRequestTimeout},
		logger:     logger.With().Str("component", "images").Logger(),
	}
}

// RequestURL builds the provider URL for an already translated prompt
func (p *ImageProvider) RequestURL(prompt string, seed uint64) string {
	q := url.Values{}
	q.Set("width", strconv.Itoa(config.ImageSize))
	q.Set("height", strconv.Itoa(config.ImageSize))
	q.Set("seed", strconv.FormatUint(seed, 10))
	q.Set("nologo", "true")
	q.Set("model", config.ImageModel)
	return p.baseURL + "/" + url.PathEscape(prompt+config.ImageStyleSuffix) + "?" + q.Encode()
}

// Render implements ImageSource
func (p *ImageProvider) Render(ctx context.Context, prompt string) ([]byte, error) {
	reqURL := p.RequestURL(prompt, rand.Uint64()>>36)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", config.ImageUserAgent)

	p.logger.Debug().Str("url", truncateURL(reqURL)).Msg("requesting image")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK || !strings.Contains(contentType, "image") {
		return nil, fmt.Errorf("%w: status %d, content type %q", ErrNotAnImage, resp.StatusCode, contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) <= config.MinImageBytes {
		return nil, fmt.Errorf("%w: only %d bytes", ErrNotAnImage, len(data))
	}

	p.logger.Debug().Int("bytes", len(data)).Msg("image received")
	return data, nil
}

func truncateURL(u string) string {
	if len(u) > 100 {
		return u[:100] + "..."
	}
	return u
}
