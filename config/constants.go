package config

import "time"

// Progress Simulation Constants
const (
	// ProgressTickInterval is how often the simulated video progress advances one step
	ProgressTickInterval = 15 * time.Second

	// RevealDelay is how long the finished progress bar stays up before the result is shown
	RevealDelay = 1 * time.Second

	// InitialProgressPercent is the bar width shown as soon as a video request is sent
	InitialProgressPercent = 5.0
)

// Story Constants
const (
	// MinStoryLength is the minimum trimmed prompt length for a video request
	MinStoryLength = 10

	// MaxScenes caps the number of scenes a story is split into
	MaxScenes = 5

	// MinSceneLength is the length a fragment must exceed to count as a scene
	MinSceneLength = 5

	// SceneSeparator splits a story into scenes
	SceneSeparator = "."

	// MaxTranslateRunes bounds the text sent to the translator and the image provider
	MaxTranslateRunes = 200
)

// Voice Constants
const (
	// DefaultVoice is used when the client does not pick one
	DefaultVoice = "hi-IN-SwaraNeural"
)

// Voices lists the narration voices offered by the client
var Voices = []string{
	"hi-IN-SwaraNeural",
	"hi-IN-MadhurNeural",
	"en-IN-NeerjaNeural",
	"en-IN-PrabhatNeural",
	"en-US-AriaNeural",
	"en-US-GuyNeural",
}

// Image Provider Constants
const (
	// DefaultImageProviderURL is a Pollinations compatible prompt endpoint
	DefaultImageProviderURL = "https://image.pollinations.ai/prompt"

	// ImageStyleSuffix is appended to every image prompt
	ImageStyleSuffix = ", high quality 3D render, Pixar style, vivid colors, 4k"

	// ImageSize is the width and height requested from the provider
	ImageSize = 1024

	// ImageModel is the provider model name
	ImageModel = "flux"

	// ImageRequestTimeout bounds a single provider call
	ImageRequestTimeout = 120 * time.Second

	// MinImageBytes rejects provider replies that are too small to be an image
	MinImageBytes = 10000

	// ImageUserAgent is sent to the provider, which rejects bare HTTP clients
	ImageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// Video Output Constants
const (
	// VideoFPS is the frame rate of generated stories
	VideoFPS = 24

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// SilentSceneDuration is the length of a scene without narration, in seconds
	SilentSceneDuration = 4.0

	// MaxConcurrentScenes limits how many scenes are prepared at once
	MaxConcurrentScenes = 2
)

// Storage Constants
const (
	// ImagesDir holds generated images under the static directory
	ImagesDir = "images"

	// AudioDir holds narration clips under the static directory
	AudioDir = "audio"

	// VideosDir holds finished stories under the static directory
	VideosDir = "videos"

	// StaticRoute is the URL prefix the static directory is served under
	StaticRoute = "/static"

	// DownloadRoute is the URL prefix of the attachment download endpoint
	DownloadRoute = "/download"
)

// Gallery Constants
const (
	// GalleryTimeFormat is the timestamp layout stored with each entry
	GalleryTimeFormat = "2006-01-02 15:04"

	// DefaultGalleryFile is the JSON gallery database
	DefaultGalleryFile = "gallery_data.json"

	// DefaultGalleryKey is the Redis list holding gallery entries
	DefaultGalleryKey = "studio:gallery"

	// DefaultGalleryTopic receives an event for every published entry
	DefaultGalleryTopic = "gallery-published"

	// GalleryFeedGroupID is the consumer group of the gallery feed tool
	GalleryFeedGroupID = "gallery-feed"
)

// YouTube Constants
const (
	// YouTubeCategoryID for Film & Animation
	YouTubeCategoryID = "1"

	// YouTubePrivacyStatus sets video visibility
	YouTubePrivacyStatus = "public"

	// MaxTitleLength is the maximum character length for video titles
	MaxTitleLength = 100
)
