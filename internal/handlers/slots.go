package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/store"
)

type SlotsHandler struct {
	store *store.Client
}

func NewSlotsHandler(store *store.Client) *SlotsHandler {
	return &SlotsHandler{store: store}
}

// ListSlots godoc
// @Summary     List template slots
// @Tags        template-slots
// @Produce     json
// @Security    Bearer
// @Param       templateIds query string false "Comma-separated template IDs"
// @Param       orderIds query string false "Comma-separated order IDs"
// @Success     200 {array} models.TemplateSlot
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /template-slots [get]
func (h *SlotsHandler) ListSlots(c *gin.Context) {
	templateIDs, err := parseUUIDList(c.Query("templateIds"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid templateIds", Message: err.Error()})
		return
	}
	orderIDs, err := parseUUIDList(c.Query("orderIds"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid orderIds", Message: err.Error()})
		return
	}

	slots, err := h.store.ListSlots(c.Request.Context(), store.SlotFilter{
		TemplateIDs: templateIDs,
		OrderIDs:    orderIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list slots", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// BulkUpsertSlots godoc
// @Summary     Bulk upsert template slots
// @Description Validates and upserts slots; duplicate (template, position) pairs in the payload keep the last occurrence
// @Tags        template-slots
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.BulkSlotsRequest true "Slots"
// @Success     200 {array} models.TemplateSlot
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /template-slots/bulk [post]
func (h *SlotsHandler) BulkUpsertSlots(c *gin.Context) {
	var req models.BulkSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if len(req.Slots) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "slots must not be empty"})
		return
	}

	slots, err := validateSlotPayloads(req.Slots)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid slot payload", Message: err.Error()})
		return
	}

	created, err := h.store.UpsertSlots(c.Request.Context(), slots)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to upsert slots", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, created)
}

// DeleteSlots godoc
// @Summary     Delete template slots
// @Tags        template-slots
// @Produce     json
// @Security    Bearer
// @Param       ids query string true "Comma-separated slot IDs"
// @Success     200 {object} models.DeleteSlotsResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /template-slots [delete]
func (h *SlotsHandler) DeleteSlots(c *gin.Context) {
	ids, err := parseUUIDList(c.Query("ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid ids", Message: err.Error()})
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "ids query parameter is required"})
		return
	}

	deleted, err := h.store.DeleteSlots(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete slots", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.DeleteSlotsResponse{Deleted: len(deleted), IDs: deleted})
}

// PrintedSummary godoc
// @Summary     Printed slot counts per order
// @Description Counts, per order, how many of its slots sit in printed templates
// @Tags        template-slots
// @Produce     json
// @Security    Bearer
// @Param       orderIds query string true "Comma-separated order IDs"
// @Success     200 {array} models.PrintedSummary
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /template-slots/printed-summary [get]
func (h *SlotsHandler) PrintedSummary(c *gin.Context) {
	orderIDs, err := parseUUIDList(c.Query("orderIds"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid orderIds", Message: err.Error()})
		return
	}
	if len(orderIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "orderIds query parameter is required"})
		return
	}

	summaries, err := h.store.PrintedSlotSummaries(c.Request.Context(), orderIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch printed summaries", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// validateSlotPayloads checks IDs and positions and dedupes by
// (template_id, position), keeping the last occurrence so later entries in
// the payload win.
func validateSlotPayloads(payloads []models.SlotPayload) ([]models.TemplateSlot, error) {
	byKey := make(map[string]models.TemplateSlot, len(payloads))
	var keys []string

	for i, payload := range payloads {
		templateID, err := uuid.Parse(payload.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("slot %d: invalid template_id", i)
		}
		if payload.Position < 1 || payload.Position > models.TemplateCapacity {
			return nil, fmt.Errorf("slot %d: position must be between 1 and %d", i, models.TemplateCapacity)
		}

		slot := models.TemplateSlot{
			TemplateID:  templateID,
			Position:    payload.Position,
			PhotoURL:    payload.PhotoURL,
			StudentName: payload.StudentName,
			Grade:       payload.Grade,
			Section:     payload.Section,
			PackageType: payload.PackageType,
		}
		if payload.OrderID != nil {
			id, err := uuid.Parse(*payload.OrderID)
			if err != nil {
				return nil, fmt.Errorf("slot %d: invalid order_id", i)
			}
			slot.OrderID = &id
		}
		if payload.ProjectID != nil {
			id, err := uuid.Parse(*payload.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("slot %d: invalid project_id", i)
			}
			slot.ProjectID = &id
		}

		key := fmt.Sprintf("%s:%d", templateID, payload.Position)
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = slot
	}

	slots := make([]models.TemplateSlot, 0, len(keys))
	for _, key := range keys {
		slots = append(slots, byKey[key])
	}
	return slots, nil
}
