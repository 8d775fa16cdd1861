package client

import (
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single call. Video generation renders every scene
// before answering, so it is generous.
const DefaultTimeout = 15 * time.Minute

// Client talks to the studio backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new studio client. An empty baseURL points at a local backend.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string { return c.baseURL }

// Resolve turns a server-relative path into an absolute URL
func (c *Client) Resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
