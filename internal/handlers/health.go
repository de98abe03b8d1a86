package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "PortfolioPal API is running."})
}

func (h HandlerSet) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from PortfolioPal backend!"})
}

// Status reports backend, database and cache state for quick smoke checks.
func (h HandlerSet) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := gin.H{
		"backend":           "running",
		"database":          "error",
		"database_url":      setOrNot(h.cfg.Database.URL),
		"database_name":     setOrNot(h.cfg.Database.Name),
		"connection_status": "not connected",
		"collections":       []string{},
		"cache":             "disabled",
	}

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("database ping failed")
	} else {
		resp["database"] = "ok"
		resp["connection_status"] = "connected"
		if names, err := h.store.CollectionNames(ctx); err == nil {
			resp["collections"] = names
		}
	}

	// A nil client means redis was deliberately left unconfigured, which is
	// not a failure.
	if h.cache != nil {
		if err := h.cache.Ping(ctx).Err(); err != nil {
			h.log.Error().Err(err).Msg("redis ping failed")
			resp["cache"] = "error"
		} else {
			resp["cache"] = "ok"
		}
	}

	c.JSON(http.StatusOK, resp)
}

func setOrNot(value string) string {
	if value == "" {
		return "not set"
	}
	return "set"
}
