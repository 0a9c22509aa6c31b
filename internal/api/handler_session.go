package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billboard-hub-backend/internal/model"
)

type loginRequest struct {
	Role  model.Role `json:"role"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
}

// GetSession returns the signed-in actor, or null.
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actor": h.state.Actor()})
}

// PostSession signs an actor in, replacing any current one.
func (h *Handler) PostSession(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	actor, outcome := h.state.Login(c.Request.Context(), req.Role, req.Name, req.Email)
	if !outcome.Applied {
		abortWithOutcome(c, outcome)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actor": actor})
}

// DeleteSession signs the current actor out.
func (h *Handler) DeleteSession(c *gin.Context) {
	h.state.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}
