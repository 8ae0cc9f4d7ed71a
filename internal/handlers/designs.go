package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/store"
)

// DesignsHandler serves the standard-design catalog customers pick from at
// order time.
type DesignsHandler struct {
	store *store.Client
}

func NewDesignsHandler(store *store.Client) *DesignsHandler {
	return &DesignsHandler{store: store}
}

// ListDesigns godoc
// @Summary     List standard designs
// @Tags        designs
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.Template
// @Failure     500 {object} models.ErrorResponse
// @Router      /templates [get]
func (h *DesignsHandler) ListDesigns(c *gin.Context) {
	templates, err := h.store.ListTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list designs", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// CreateDesign godoc
// @Summary     Add a standard design
// @Tags        designs
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateTemplateRequest true "Design"
// @Success     201 {object} models.Template
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /templates [post]
func (h *DesignsHandler) CreateDesign(c *gin.Context) {
	var req models.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	template, err := h.store.CreateTemplate(c.Request.Context(), req.Name, req.PreviewURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create design", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, template)
}
