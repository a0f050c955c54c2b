package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats handles GET /stats. The directory degrades to zero counts on
// storage errors, so this endpoint always answers 200.
func (s *Server) Stats(c *gin.Context) {
	stats, err := s.directorySvc.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error loading stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
