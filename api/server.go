// Package api exposes the studio backend over HTTP.
package api

import (
	"context"

	"studio/config"
	"studio/events"
	"studio/gallery"
	"studio/storage"
	"studio/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Generator produces media and returns its public URL
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	GenerateVideo(ctx context.Context, text, voice string) (string, error)
}

// VideoUploader copies a published video to an external platform
type VideoUploader interface {
	Upload(ctx context.Context, path string, entry types.GalleryEntry) (string, error)
}

// Deps are the collaborators of the HTTP handlers. Events and Uploader are
// optional.
type Deps struct {
	Generator Generator
	Gallery   gallery.Store
	Files     *storage.Store
	Events    events.Publisher
	Uploader  VideoUploader
	Logger    zerolog.Logger
}

// Server holds the handler dependencies
type Server struct {
	gen      Generator
	gallery  gallery.Store
	files    *storage.Store
	events   events.Publisher
	uploader VideoUploader
	logger   zerolog.Logger
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	s := &Server{
		gen:      deps.Generator,
		gallery:  deps.Gallery,
		files:    deps.Files,
		events:   deps.Events,
		uploader: deps.Uploader,
		logger:   deps.Logger.With().Str("component", "api").Logger(),
	}
	if s.events == nil {
		s.events = events.Nop{}
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.Static(config.StaticRoute, s.files.Root())

	// Register resource routers
	s.registerGenerationRoutes(r)
	s.registerGalleryRoutes(r)
	s.registerDownloadRoutes(r)
	registerHealthRoutes(r)
	return r
}
