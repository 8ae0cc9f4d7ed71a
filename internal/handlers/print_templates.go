package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/printing"
	"photobooth-backend/internal/store"
)

type PrintTemplatesHandler struct {
	store     *store.Client
	lifecycle *printing.Lifecycle
}

func NewPrintTemplatesHandler(store *store.Client, lifecycle *printing.Lifecycle) *PrintTemplatesHandler {
	return &PrintTemplatesHandler{store: store, lifecycle: lifecycle}
}

// ListPrintTemplates godoc
// @Summary     List print templates
// @Tags        print-templates
// @Produce     json
// @Security    Bearer
// @Param       status query string false "Template status"
// @Param       statuses query string false "Comma-separated template statuses"
// @Success     200 {array} models.PrintTemplate
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /print-templates [get]
func (h *PrintTemplatesHandler) ListPrintTemplates(c *gin.Context) {
	var statuses []models.TemplateStatus
	raw := splitCSV(c.Query("statuses"))
	if status := c.Query("status"); status != "" {
		raw = append(raw, status)
	}
	for _, value := range raw {
		status := models.TemplateStatus(value)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid template status", Message: value})
			return
		}
		statuses = append(statuses, status)
	}

	templates, err := h.store.ListPrintTemplates(c.Request.Context(), statuses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list print templates", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// CountPrintTemplates godoc
// @Summary     Count print templates
// @Tags        print-templates
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CountResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /print-templates/count [get]
func (h *PrintTemplatesHandler) CountPrintTemplates(c *gin.Context) {
	count, err := h.store.CountPrintTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to count print templates", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.CountResponse{Count: count})
}

// GetPrintTemplate godoc
// @Summary     Get print template
// @Tags        print-templates
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Print template ID (UUID)"
// @Success     200 {object} models.PrintTemplate
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /print-templates/{id} [get]
func (h *PrintTemplatesHandler) GetPrintTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid template id"})
		return
	}

	template, err := h.store.GetPrintTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "print template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get print template", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, template)
}

// UpdatePrintTemplate godoc
// @Summary     Update print template fields
// @Tags        print-templates
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Print template ID (UUID)"
// @Param       request body map[string]interface{} true "Fields to update"
// @Success     200 {object} models.PrintTemplate
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /print-templates/{id} [patch]
func (h *PrintTemplatesHandler) UpdatePrintTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid template id"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	template, err := h.store.UpdatePrintTemplateFields(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "print template not found"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to update print template", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, template)
}

// DownloadPrintTemplate godoc
// @Summary     Mark a template downloaded
// @Description Records the export of a complete sheet and moves every order on it to to_print
// @Tags        print-templates
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Print template ID (UUID)"
// @Param       request body models.DownloadTemplateRequest false "Final sheet image URL"
// @Success     200 {object} models.PrintTemplate
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /print-templates/{id}/download [post]
func (h *PrintTemplatesHandler) DownloadPrintTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid template id"})
		return
	}

	var req models.DownloadTemplateRequest
	_ = c.ShouldBindJSON(&req)

	template, err := h.lifecycle.MarkDownloaded(c.Request.Context(), id, req.FinalImageURL)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// PrintPrintTemplate godoc
// @Summary     Mark a template printed
// @Description Records the physical print; orders whose every expected slot is now printed move to packed
// @Tags        print-templates
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Print template ID (UUID)"
// @Success     200 {object} models.PrintTemplate
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /print-templates/{id}/print [post]
func (h *PrintTemplatesHandler) PrintPrintTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid template id"})
		return
	}

	template, err := h.lifecycle.MarkPrinted(c.Request.Context(), id)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *PrintTemplatesHandler) respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "print template not found"})
	case errors.Is(err, printing.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid template status transition",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update template status",
			Message: err.Error(),
		})
	}
}
