package types

// GalleryEntry is one published item in the public gallery
type GalleryEntry struct {
	ID          string    `json:"id"`
	Type        MediaKind `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        string    `json:"tags"`
	FileURL     string    `json:"file_url"`
	Timestamp   string    `json:"timestamp"`
}

// VideoResponse is the body of POST /generate-video
type VideoResponse struct {
	VideoURL string `json:"video_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ImageResponse is the body of POST /generate-image
type ImageResponse struct {
	ImageURL string `json:"image_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PublishResponse is the body of POST /publish
type PublishResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
