package server

import (
	"net/http"

	registrationdomain "github.com/aurafarming/mailportal/internal/registration/domain"
	"github.com/gin-gonic/gin"
)

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// Register handles POST /register. All failures use the same response
// shape; only the message and status differ.
func (s *Server) Register(c *gin.Context) {
	var req registrationdomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, registerResponse{
			Success: false,
			Message: "All fields are required",
		})
		return
	}

	outcome, err := s.registrationSvc.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		status, message := registrationErrorResponse(err)
		c.JSON(status, registerResponse{
			Success: false,
			Message: message,
		})
		return
	}

	c.JSON(http.StatusOK, registerResponse{
		Success: true,
		Message: outcome.Message,
		Email:   outcome.Email,
	})
}
