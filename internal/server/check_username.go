package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type checkUsernameRequest struct {
	Username string `json:"username"`
}

type checkUsernameResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// CheckUsername handles POST /check-username. Policy rejections answer 200
// with available=false; only storage failures answer 500.
func (s *Server) CheckUsername(c *gin.Context) {
	var req checkUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, checkUsernameResponse{
			Available: false,
			Message:   "Error checking username availability",
		})
		return
	}

	availability, err := s.registrationSvc.CheckUsername(c.Request.Context(), req.Username)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, checkUsernameResponse{
			Available: false,
			Message:   "Error checking username availability",
		})
		return
	}

	c.JSON(http.StatusOK, checkUsernameResponse{
		Available: availability.Available,
		Message:   availability.Message,
	})
}
