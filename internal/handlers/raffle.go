package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/raffle"
	"photobooth-backend/internal/store"
)

type RaffleHandler struct {
	store  *store.Client
	engine *raffle.Engine
}

func NewRaffleHandler(store *store.Client, engine *raffle.Engine) *RaffleHandler {
	return &RaffleHandler{store: store, engine: engine}
}

// ListEntries godoc
// @Summary     List raffle entries
// @Tags        raffle
// @Produce     json
// @Security    Bearer
// @Param       isWinner query bool false "Filter by winner flag"
// @Success     200 {array} models.RaffleEntry
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /raffle-entries [get]
func (h *RaffleHandler) ListEntries(c *gin.Context) {
	var isWinner *bool
	if raw := c.Query("isWinner"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid isWinner value", Message: raw})
			return
		}
		isWinner = &value
	}

	entries, err := h.store.ListRaffleEntries(c.Request.Context(), isWinner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list raffle entries", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// BulkCreateEntries godoc
// @Summary     Bulk create raffle entries
// @Tags        raffle
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.BulkRaffleEntriesRequest true "Entries"
// @Success     201 {array} models.RaffleEntry
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /raffle-entries/bulk [post]
func (h *RaffleHandler) BulkCreateEntries(c *gin.Context) {
	var req models.BulkRaffleEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "entries must not be empty"})
		return
	}

	entries := make([]models.RaffleEntry, 0, len(req.Entries))
	for i, payload := range req.Entries {
		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid order_id",
				Message: "entry " + strconv.Itoa(i),
			})
			return
		}
		if payload.RaffleNumber < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "raffle_number must be positive",
				Message: "entry " + strconv.Itoa(i),
			})
			return
		}
		entries = append(entries, models.RaffleEntry{
			OrderID:      orderID,
			CustomerName: payload.CustomerName,
			Grade:        payload.Grade,
			Section:      payload.Section,
			RaffleNumber: payload.RaffleNumber,
		})
	}

	created, err := h.store.BulkCreateRaffleEntries(c.Request.Context(), entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create raffle entries", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEntry godoc
// @Summary     Update raffle entry fields
// @Tags        raffle
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Raffle entry ID (UUID)"
// @Param       request body map[string]interface{} true "Fields to update"
// @Success     200 {object} models.RaffleEntry
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /raffle-entries/{id} [patch]
func (h *RaffleHandler) UpdateEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid raffle entry id"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	entry, err := h.store.UpdateRaffleEntryFields(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "raffle entry not found"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to update raffle entry", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListWinners godoc
// @Summary     List raffle winners
// @Tags        raffle
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.RaffleWinner
// @Failure     500 {object} models.ErrorResponse
// @Router      /raffle-winners [get]
func (h *RaffleHandler) ListWinners(c *gin.Context) {
	winners, err := h.store.ListRaffleWinners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list raffle winners", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, winners)
}

// Draw godoc
// @Summary     Draw a raffle winner
// @Description Picks one un-drawn entry uniformly at random and records the winner
// @Tags        raffle
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.DrawRequest false "Prize details"
// @Success     200 {object} models.RaffleWinner
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /raffle/draw [post]
func (h *RaffleHandler) Draw(c *gin.Context) {
	var req models.DrawRequest
	_ = c.ShouldBindJSON(&req)

	winner, err := h.engine.Draw(c.Request.Context(), req.PrizeDetails)
	if err != nil {
		switch {
		case errors.Is(err, raffle.ErrNoEntries):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no raffle entries left to draw"})
		case errors.Is(err, store.ErrAlreadyDrawn):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "entry was already drawn", Message: "retry the draw"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to draw winner", Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, winner)
}
