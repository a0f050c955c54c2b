package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// Health handles GET /health. Healthy means storage answered a trivial
// query; there is no deeper readiness notion in the portal.
func (s *Server) Health(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.directorySvc.Ping(c.Request.Context()); err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Message:   "Database connection failed",
			Timestamp: now,
			Database:  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Message:   "AuraMail Employee Portal is operational",
		Timestamp: now,
		Database:  "connected",
	})
}
