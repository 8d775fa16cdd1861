package api

import (
	"net/http"

	"studio/config"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerDownloadRoutes(r *gin.Engine) {
	r.GET(config.DownloadRoute+"/:filename", s.handleDownload)
}

// handleDownload serves a generated file as an attachment
func (s *Server) handleDownload(c *gin.Context) {
	filename := c.Param("filename")
	path, err := s.files.Locate(filename)
	if err != nil {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	c.FileAttachment(path, filename)
}
