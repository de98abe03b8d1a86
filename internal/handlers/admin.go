package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const overviewLimit = 1000

// AdminOverview returns the most recent users and activity entries, capped
// at 1000 each, newest first. Password hashes never leave the server.
func (h HandlerSet) AdminOverview(c *gin.Context) {
	users, err := h.users.ListRecent(c.Request.Context(), overviewLimit)
	if err != nil {
		h.fail(c, err, "admin overview: list users failed")
		return
	}

	activity, err := h.activity.ListRecent(c.Request.Context(), overviewLimit)
	if err != nil {
		h.fail(c, err, "admin overview: list activity failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"activity": activity,
	})
}
