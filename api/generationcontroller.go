package api

import (
	"errors"
	"net/http"

	"studio/config"
	"studio/generation"
	"studio/types"

	"github.com/gin-gonic/gin"
)

// Error bodies of the generation endpoints
const (
	errPromptEmpty  = "Prompt is empty"
	errNoPrompt     = "No prompt"
	errNoScenes     = "Story needs at least one sentence longer than 5 characters"
	errImageService = "AI Service unavailable, try again in 10s"
)

func (s *Server) registerGenerationRoutes(r *gin.Engine) {
	r.POST("/generate-video", s.handleGenerateVideo)
	r.POST("/generate-image", s.handleGenerateImage)
}

func (s *Server) handleGenerateVideo(c *gin.Context) {
	prompt := c.PostForm("prompt")
	voice := c.DefaultPostForm("voice", config.DefaultVoice)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, types.VideoResponse{Error: errPromptEmpty})
		return
	}

	url, err := s.gen.GenerateVideo(c.Request.Context(), prompt, voice)
	switch {
	case errors.Is(err, generation.ErrNoScenes):
		c.JSON(http.StatusBadRequest, types.VideoResponse{Error: errNoScenes})
		return
	case err != nil:
		s.logger.Error().Err(err).Msg("❌ video generation failed")
		c.JSON(http.StatusInternalServerError, types.VideoResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.VideoResponse{VideoURL: url})
}

func (s *Server) handleGenerateImage(c *gin.Context) {
	prompt := c.PostForm("prompt")
	if prompt == "" {
		c.JSON(http.StatusBadRequest, types.ImageResponse{Error: errNoPrompt})
		return
	}

	url, err := s.gen.GenerateImage(c.Request.Context(), prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("❌ image generation failed")
		c.JSON(http.StatusInternalServerError, types.ImageResponse{Error: errImageService})
		return
	}

	c.JSON(http.StatusOK, types.ImageResponse{ImageURL: url})
}
