package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/storage"
)

// MaxUploadSize caps project-image uploads at 25 MB.
const MaxUploadSize = 25 << 20

const uploadRetryAttempts = 3

var allowedImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

type UploadsHandler struct {
	store storage.Store
}

func NewUploadsHandler(store storage.Store) *UploadsHandler {
	return &UploadsHandler{store: store}
}

// UploadProjectImage godoc
// @Summary     Upload a project image
// @Description Stores an original photo or exported strip under the project's key prefix
// @Tags        uploads
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Image file (max 25 MB)"
// @Param       project_id formData string true "Project ID (UUID)"
// @Param       kind formData string false "Image kind (photo|thumbnail), defaults to photo"
// @Success     201 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /uploads/project-image [post]
func (h *UploadsHandler) UploadProjectImage(c *gin.Context) {
	projectID, err := uuid.Parse(c.PostForm("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project_id"})
		return
	}

	kind := c.PostForm("kind")
	if kind == "" {
		kind = "photo"
	}
	if kind != "photo" && kind != "thumbnail" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "kind must be photo or thumbnail"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required", Message: err.Error()})
		return
	}
	if header.Size > MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error:   "file too large",
			Message: fmt.Sprintf("maximum upload size is %d bytes", MaxUploadSize),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unsupported file type", Message: ext})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read upload", Message: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read upload", Message: err.Error()})
		return
	}
	if len(data) > MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "file too large"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("project-images/%s/%s-%d-%s%s",
		projectID, kind, time.Now().UnixMilli(), uuid.New(), ext)

	if err := storage.PutWithRetry(c.Request.Context(), h.store, key, data, contentType, uploadRetryAttempts); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store upload", Message: err.Error()})
		return
	}

	log.Info().
		Str("project_id", projectID.String()).
		Str("kind", kind).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("project image uploaded")

	c.JSON(http.StatusCreated, models.UploadResponse{
		StorageKey: key,
		PublicURL:  h.store.PublicURL(key),
	})
}

// ServeUpload serves stored blobs publicly. The canvas editor reads these
// images cross-origin, so the response must carry open CORS headers.
func (h *UploadsHandler) ServeUpload(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing object key"})
		return
	}

	data, contentType, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "object not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read object", Message: err.Error()})
		return
	}

	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Cache-Control", "public, max-age=86400")
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
