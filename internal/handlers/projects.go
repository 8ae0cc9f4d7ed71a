package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/printing"
	"photobooth-backend/internal/store"
)

type ProjectsHandler struct {
	store     *store.Client
	allocator *printing.Allocator
}

func NewProjectsHandler(store *store.Client, allocator *printing.Allocator) *ProjectsHandler {
	return &ProjectsHandler{store: store, allocator: allocator}
}

// ListProjects godoc
// @Summary     List projects
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       status query string false "Project status"
// @Success     200 {array} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	status := models.ProjectStatus(c.Query("status"))
	switch status {
	case "", models.ProjectStatusAwaitingPhoto, models.ProjectStatusInProgress, models.ProjectStatusCompleted:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project status", Message: string(status)})
		return
	}

	projects, err := h.store.ListProjects(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list projects", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary     Get project
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Project ID (UUID)"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	project, err := h.store.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get project", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject godoc
// @Summary     Create project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProjectRequest true "Project"
// @Success     201 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project := &models.Project{
		Name:         req.Name,
		CustomerName: req.CustomerName,
		Grade:        req.Grade,
		Section:      req.Section,
		PackageType:  req.PackageType,
		DesignType:   req.DesignType,
		Status:       models.ProjectStatusAwaitingPhoto,
	}
	if req.TemplateID != nil {
		id, err := uuid.Parse(*req.TemplateID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid template_id"})
			return
		}
		project.TemplateID = &id
	}
	if req.OrderID != nil {
		id, err := uuid.Parse(*req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order_id"})
			return
		}
		project.OrderID = &id
	}

	created, err := h.store.CreateProject(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create project", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProject godoc
// @Summary     Update project fields
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Project ID (UUID)"
// @Param       request body map[string]interface{} true "Fields to update"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{id} [patch]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project, err := h.store.UpdateProjectFields(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to update project", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary     Delete project
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Project ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete project", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// RecordPhoto godoc
// @Summary     Attach the uploaded original photo
// @Description Records the photo on the project, moves the project to in_progress and the order to photo_uploaded
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Project ID (UUID)"
// @Param       request body models.RecordPhotoRequest true "Photo URL"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{id}/photo [post]
func (h *ProjectsHandler) RecordPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.RecordPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	now := time.Now()
	project, err := h.store.RecordProjectPhoto(c.Request.Context(), id, req.PhotoURL, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record photo", Message: err.Error()})
		return
	}

	if project.OrderID != nil {
		_, err := h.store.UpdateOrderFields(c.Request.Context(), *project.OrderID, map[string]interface{}{
			"order_status":        string(models.OrderStatusPhotoUploaded),
			"photo_status":        string(models.PhotoStatusUploaded),
			"photo_uploaded_date": now,
		})
		if err != nil {
			log.Error().Err(err).
				Str("order_id", project.OrderID.String()).
				Msg("failed to cascade photo upload to order")
		}
	}

	c.JSON(http.StatusOK, project)
}

// CompleteProject godoc
// @Summary     Save the finished edit
// @Description Persists the editor save, moves the order to completed and assigns the strip to print-template slots. Allocation failure is partial success: the project is saved either way.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Project ID (UUID)"
// @Param       request body models.CompleteProjectRequest true "Editor save"
// @Success     200 {object} models.CompleteProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{id}/complete [post]
func (h *ProjectsHandler) CompleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.CompleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	now := time.Now()
	project, err := h.store.CompleteProject(c.Request.Context(), id, req.CanvasData, req.FrameColor, req.ThumbnailURL, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to complete project", Message: err.Error()})
		return
	}

	response := models.CompleteProjectResponse{Project: *project}

	if project.OrderID != nil {
		_, err := h.store.UpdateOrderFields(c.Request.Context(), *project.OrderID, map[string]interface{}{
			"order_status":           string(models.OrderStatusCompleted),
			"photo_status":           string(models.PhotoStatusCompleted),
			"project_completed_date": now,
		})
		if err != nil {
			log.Error().Err(err).
				Str("order_id", project.OrderID.String()).
				Msg("failed to cascade completion to order")
		}

		order, err := h.store.GetOrder(c.Request.Context(), *project.OrderID)
		if err != nil {
			response.TemplateError = err.Error()
			c.JSON(http.StatusOK, response)
			return
		}

		allocReq := printing.AllocationRequest{
			OrderID:     order.ID,
			ProjectID:   project.ID,
			PhotoURL:    req.ThumbnailURL,
			StudentName: order.CustomerName,
			Grade:       order.Grade,
			Section:     order.Section,
			PackageType: order.PackageType,
		}
		if err := h.allocator.Allocate(c.Request.Context(), allocReq); err != nil {
			// The save already happened; report the allocation failure so the
			// operator can retry, but do not roll the project back.
			log.Error().Err(err).
				Str("project_id", project.ID.String()).
				Str("order_id", order.ID.String()).
				Msg("template allocation failed")
			response.TemplateError = err.Error()
		} else {
			response.TemplateAssigned = true
		}
	}

	c.JSON(http.StatusOK, response)
}
