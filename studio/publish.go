package studio

import (
	"context"
	"strings"

	"studio/types"
)

// SubmitPublish sends the last generated artifact to the public gallery with
// the given metadata. The artifact URL is sent exactly as the generation
// endpoint returned it.
func (c *Controller) SubmitPublish(ctx context.Context, title, description, tags string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		c.flows.apply(FlowPublish, EventInvalid)
		return &ValidationError{Message: MsgPublishFieldsMissing}
	}

	artifact := c.session.Last()
	if artifact.IsEmpty() {
		c.flows.apply(FlowPublish, EventInvalid)
		return &ValidationError{Message: MsgNothingToPublish}
	}

	sub := types.PublishSubmission{
		Kind:        artifact.Kind(),
		Title:       title,
		Description: description,
		Tags:        tags,
		FileURL:     artifact.URL(),
	}

	c.flows.apply(FlowPublish, EventSubmit)
	c.logger.Info().Str("type", string(sub.Kind)).Str("file_url", sub.FileURL).Msg("📤 publishing to gallery")

	resp, err := c.backend.Publish(ctx, sub)
	err = publishOutcome(resp, err)
	c.settle(FlowPublish, err)
	if err != nil {
		c.logger.Warn().Err(err).Msg("❌ publish failed")
		return err
	}

	c.logger.Info().Msg("✅ published")
	return nil
}

func publishOutcome(resp *types.PublishResponse, err error) error {
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp == nil || !resp.Success {
		var msg string
		if resp != nil {
			msg = resp.Error
		}
		return serverError(msg, DefaultPublishError)
	}
	return nil
}
