package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type InfoHandler struct {
	databaseDriver string
	environment    string
}

func NewInfoHandler(databaseDriver, environment string) *InfoHandler {
	return &InfoHandler{databaseDriver: databaseDriver, environment: environment}
}

// Root godoc
// @Summary Service information
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *InfoHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Pageant Voting System API",
		"status":   "running",
		"api_base": "/api/v1",
		"endpoints": gin.H{
			"register":   "/api/v1/auth/register",
			"login":      "/api/v1/auth/login",
			"candidates": "/api/v1/candidates",
			"results":    "/api/v1/results",
			"live":       "/api/v1/ws/results",
			"docs":       "/swagger/index.html",
		},
		"database":    h.databaseDriver,
		"environment": h.environment,
	})
}

func (h *InfoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
