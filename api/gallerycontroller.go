package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"studio/gallery"
	"studio/studio"
	"studio/types"

	"github.com/gin-gonic/gin"
)

const (
	errUnknownType   = "Unknown media type"
	errNoFile        = "No file to publish"
	errDatabase      = "JSON database error"
	errGalleryRead   = "Gallery unavailable"
	youtubeUploadTTL = 30 * time.Minute
)

func (s *Server) registerGalleryRoutes(r *gin.Engine) {
	r.POST("/publish", s.handlePublish)
	r.GET("/gallery/photos", s.handleGallery(types.KindImage))
	r.GET("/gallery/videos", s.handleGallery(types.KindVideo))
}

func (s *Server) handlePublish(c *gin.Context) {
	sub := types.PublishSubmission{
		Kind:        types.MediaKind(c.PostForm("type")),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        c.PostForm("tags"),
		FileURL:     c.PostForm("file_url"),
	}
	if !sub.Kind.Valid() {
		c.JSON(http.StatusBadRequest, types.PublishResponse{Error: errUnknownType})
		return
	}
	if strings.TrimSpace(sub.FileURL) == "" {
		c.JSON(http.StatusBadRequest, types.PublishResponse{Error: errNoFile})
		return
	}

	entry := gallery.NewEntry(sub, time.Now())
	ctx := c.Request.Context()
	if err := s.gallery.Add(ctx, entry); err != nil {
		s.logger.Error().Err(err).Msg("❌ failed to store gallery entry")
		c.JSON(http.StatusInternalServerError, types.PublishResponse{Error: errDatabase})
		return
	}
	s.logger.Info().Str("entry", entry.ID).Str("type", string(entry.Type)).Msg("🖼  published")

	if err := s.events.Published(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("entry", entry.ID).Msg("failed to announce publication")
	}
	if entry.Type == types.KindVideo && s.uploader != nil {
		go s.uploadVideo(context.WithoutCancel(ctx), entry)
	}

	c.JSON(http.StatusOK, types.PublishResponse{Success: true})
}

// uploadVideo mirrors a published video to the configured uploader
func (s *Server) uploadVideo(ctx context.Context, entry types.GalleryEntry) {
	ctx, cancel := context.WithTimeout(ctx, youtubeUploadTTL)
	defer cancel()

	path, err := s.files.Locate(studio.Filename(entry.FileURL))
	if err != nil {
		s.logger.Warn().Err(err).Str("entry", entry.ID).Msg("published video not found locally, skipping upload")
		return
	}
	if _, err := s.uploader.Upload(ctx, path, entry); err != nil {
		s.logger.Error().Err(err).Str("entry", entry.ID).Msg("❌ video upload failed")
	}
}

func (s *Server) handleGallery(kind types.MediaKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := s.gallery.List(c.Request.Context(), kind)
		if err != nil {
			s.logger.Error().Err(err).Str("type", string(kind)).Msg("failed to list gallery")
			c.JSON(http.StatusInternalServerError, gin.H{"error": errGalleryRead})
			return
		}
		if entries == nil {
			entries = []types.GalleryEntry{}
		}
		c.JSON(http.StatusOK, entries)
	}
}
