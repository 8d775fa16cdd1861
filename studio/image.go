package studio

import (
	"context"
	"strings"

	"studio/types"
)

// SubmitImageRequest generates a single image. There is no progress
// simulation: the call returns when the backend answers.
func (c *Controller) SubmitImageRequest(ctx context.Context, prompt string) (types.GenerationResult, error) {
	if strings.TrimSpace(prompt) == "" {
		c.flows.apply(FlowImage, EventInvalid)
		return types.GenerationResult{}, &ValidationError{Message: MsgImagePromptMissing}
	}

	c.flows.apply(FlowImage, EventSubmit)
	c.logger.Info().Msg("🎨 image request submitted")

	resp, err := c.backend.GenerateImage(ctx, prompt)
	result, err := c.imageResult(resp, err)
	c.settle(FlowImage, err)
	if err != nil {
		c.logger.Warn().Err(err).Msg("❌ image generation failed")
		return types.GenerationResult{}, err
	}

	c.session.remember(result)
	c.logger.Info().Str("url", result.MediaURL).Msg("✅ image received")
	return result, nil
}

func (c *Controller) imageResult(resp *types.ImageResponse, err error) (types.GenerationResult, error) {
	if err != nil {
		return types.GenerationResult{}, &TransportError{Err: err}
	}
	if resp == nil || resp.ImageURL == "" {
		var msg string
		if resp != nil {
			msg = resp.Error
		}
		return types.GenerationResult{}, serverError(msg, DefaultImageError)
	}
	return types.GenerationResult{Kind: types.KindImage, MediaURL: resp.ImageURL}, nil
}
