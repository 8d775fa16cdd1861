package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Narrator speaks text with the given voice and returns MP3 bytes
type Narrator interface {
	Narrate(ctx context.Context, text, voice string) ([]byte, error)
}

// HTTPNarrator posts {text, voice} to a TTS endpoint that answers with audio
type HTTPNarrator struct {
	url        string
	httpClient *http.Client
}

// NewHTTPNarrator creates a narrator for the TTS endpoint at url
func NewHTTPNarrator(url string) *HTTPNarrator {
	return &HTTPNarrator{
		url:        url,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type narrateRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// Narrate implements Narrator
func (n *HTTPNarrator) Narrate(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(narrateRequest{Text: text, Voice: voice})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tts returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts returned no audio")
	}
	return audio, nil
}
