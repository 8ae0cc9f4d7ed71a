package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/store"
)

type HealthHandler struct {
	store *store.Client
}

func NewHealthHandler(store *store.Client) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health godoc
// @Summary     Health check
// @Description Returns ok when the service and its database are reachable
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:   "database unreachable",
				Message: err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
