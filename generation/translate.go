package generation

import (
	"context"
	"strings"
	"time"

	"studio/config"
	"studio/story"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
	"github.com/rs/zerolog"
)

// Translator turns a prompt in any language into English. It never fails:
// when translation is unavailable the truncated input is returned.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// Passthrough only truncates
type Passthrough struct{}

// Translate implements Translator
func (Passthrough) Translate(_ context.Context, text string) string {
	return story.Truncate(text, config.MaxTranslateRunes)
}

// chatClient is the part of the Cohere client the translator uses
type chatClient interface {
	Chat(ctx context.Context, request *cohere.ChatRequest, opts ...option.RequestOption) (*cohere.NonStreamedChatResponse, error)
}

// CohereTranslator translates with a Cohere chat model
type CohereTranslator struct {
	chat    chatClient
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewCohereTranslator creates a translator using apiKey
func NewCohereTranslator(apiKey, model string, logger zerolog.Logger) *CohereTranslator {
	client := cohereclient.NewClient(cohereclient.WithToken(apiKey))
	return newCohereTranslator(client, model, logger)
}

func newCohereTranslator(chat chatClient, model string, logger zerolog.Logger) *CohereTranslator {
	return &CohereTranslator{
		chat:    chat,
		model:   model,
		timeout: 30 * time.Second,
		logger:  logger.With().Str("component", "translator").Logger(),
	}
}

const translatePreamble = "Translate the user's text into English. " +
	"Reply with the translation only, without quotes or explanations. " +
	"If the text is already English, repeat it unchanged."

// Translate implements Translator
func (t *CohereTranslator) Translate(ctx context.Context, text string) string {
	short := story.Truncate(text, config.MaxTranslateRunes)
	if strings.TrimSpace(short) == "" {
		return short
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.chat.Chat(ctx, &cohere.ChatRequest{
		Message:  short,
		Model:    cohere.String(t.model),
		Preamble: cohere.String(translatePreamble),
	})
	if err != nil {
		t.logger.Warn().Err(err).Msg("translation failed, using original text")
		return short
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return short
	}
	return strings.TrimSpace(resp.Text)
}
