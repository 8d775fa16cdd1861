package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHealthRoutes registers health check endpoints.
func registerHealthRoutes(r *gin.Engine) {
	r.GET("/health", handleHealth)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
