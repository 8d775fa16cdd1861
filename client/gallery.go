package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"studio/types"
)

// Publish submits an artifact to the public gallery
func (c *Client) Publish(ctx context.Context, sub types.PublishSubmission) (*types.PublishResponse, error) {
	var resp types.PublishResponse
	fields := []formField{
		{"type", string(sub.Kind)},
		{"title", sub.Title},
		{"description", sub.Description},
		{"tags", sub.Tags},
		{"file_url", sub.FileURL},
	}
	if err := c.doFormRequest(ctx, "/publish", fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Gallery lists published entries of the given kind, newest first
func (c *Client) Gallery(ctx context.Context, kind types.MediaKind) ([]types.GalleryEntry, error) {
	path := "/gallery/photos"
	if kind == types.KindVideo {
		path = "/gallery/videos"
	}

	var entries []types.GalleryEntry
	if err := c.doJSONRequest(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Download streams /download/{filename} into w and returns the number of bytes written
func (c *Client) Download(ctx context.Context, filename string, w io.Writer) (int64, error) {
	endpoint := c.baseURL + "/download/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return n, nil
}

// Health checks that the backend is reachable
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.doJSONRequest(ctx, "/health", &status); err != nil {
		return err
	}
	if status.Status != "healthy" {
		return fmt.Errorf("backend reported status %q", status.Status)
	}
	return nil
}
