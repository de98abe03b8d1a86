package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfoliopal/api/internal/middleware"
	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/service"
)

type activityRequest struct {
	UserID string         `json:"user_id" binding:"required"`
	Type   string         `json:"type" binding:"required"`
	IP     string         `json:"ip"`
	Meta   map[string]any `json:"meta"`
}

// LogActivity appends an audit entry. Users may only log entries about
// themselves; the admin identity may log for anyone.
func (h HandlerSet) LogActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	entry := models.Activity{
		UserID: req.UserID,
		Type:   req.Type,
		IP:     req.IP,
		Meta:   req.Meta,
	}

	err := h.authService.LogActivity(c.Request.Context(), actor, entry, h.gate.IsAdmin(actor))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		h.fail(c, err, "log activity failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
