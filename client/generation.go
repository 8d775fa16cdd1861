package client

import (
	"context"

	"studio/types"
)

// GenerateVideo asks the backend to turn a story into a narrated video
func (c *Client) GenerateVideo(ctx context.Context, prompt, voice string) (*types.VideoResponse, error) {
	var resp types.VideoResponse
	fields := []formField{
		{"prompt", prompt},
		{"voice", voice},
	}
	if err := c.doFormRequest(ctx, "/generate-video", fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateImage asks the backend for a single image
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*types.ImageResponse, error) {
	var resp types.ImageResponse
	if err := c.doFormRequest(ctx, "/generate-image", []formField{{"prompt", prompt}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
