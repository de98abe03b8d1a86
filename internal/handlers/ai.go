package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfoliopal/api/internal/ai"
)

// ProjectWriter generates a structured description for a single project.
func (h HandlerSet) ProjectWriter(c *gin.Context) {
	var input ai.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := h.generator.Generate(c.Request.Context(), ai.ProjectPrompt(input))
	c.JSON(http.StatusOK, gin.H{"result": text})
}

// Portfolio generates full portfolio content from structured input.
func (h HandlerSet) Portfolio(c *gin.Context) {
	var input ai.PortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := h.generator.Generate(c.Request.Context(), ai.PortfolioPrompt(input))
	c.JSON(http.StatusOK, gin.H{"result": text})
}
