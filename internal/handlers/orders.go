package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photobooth-backend/internal/models"
	"photobooth-backend/internal/store"
)

// Pricing constants for the cashier flow. Amounts are in pesos.
const (
	rafflePrice         = 5.0
	packageBaseCostTwo  = 50.0
	packageBaseCostFour = 100.0
	includedRaffles     = 1
)

type OrdersHandler struct {
	store *store.Client
}

func NewOrdersHandler(store *store.Client) *OrdersHandler {
	return &OrdersHandler{store: store}
}

// ListOrders godoc
// @Summary     List orders
// @Description Returns orders, optionally filtered by ids and statuses
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       ids query string false "Comma-separated order IDs"
// @Param       status query string false "Order status"
// @Param       statuses query string false "Comma-separated order statuses"
// @Success     200 {array} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	ids, err := parseUUIDList(c.Query("ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid ids", Message: err.Error()})
		return
	}

	var statuses []models.OrderStatus
	raw := splitCSV(c.Query("statuses"))
	if status := c.Query("status"); status != "" {
		raw = append(raw, status)
	}
	for _, value := range raw {
		status := models.OrderStatus(value)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order status", Message: value})
			return
		}
		statuses = append(statuses, status)
	}

	orders, err := h.store.ListOrders(c.Request.Context(), store.OrderFilter{IDs: ids, Statuses: statuses})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list orders", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary     Get order
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Order ID (UUID)"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get order", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder godoc
// @Summary     Create order
// @Description Creates the order, its pending editing project and the numbered raffle entries in one transaction
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateOrderRequest true "Order"
// @Success     201 {object} models.CreateOrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if req.PackageType != 2 && req.PackageType != 4 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "package_type must be 2 or 4"})
		return
	}

	maxAdditional := 1
	if req.PackageType == 4 {
		maxAdditional = 3
	}
	if req.AdditionalRaffles < 0 || req.AdditionalRaffles > maxAdditional {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "additional_raffles out of range for package",
		})
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	if paymentMethod != "cash" && paymentMethod != "gcash" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "payment_method must be cash or gcash"})
		return
	}
	var gcashReference *string
	if paymentMethod == "gcash" {
		if req.GcashReference == nil || *req.GcashReference == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "gcash_reference is required for gcash payments"})
			return
		}
		gcashReference = req.GcashReference
	}

	designType := req.DesignType
	if designType == "" {
		designType = "standard"
	}
	var standardDesignID *uuid.UUID
	if req.StandardDesignID != nil && *req.StandardDesignID != "" {
		id, err := uuid.Parse(*req.StandardDesignID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid standard_design_id"})
			return
		}
		standardDesignID = &id
	}

	baseCost := packageBaseCostTwo
	if req.PackageType == 4 {
		baseCost = packageBaseCostFour
	}
	raffleCost := float64(req.AdditionalRaffles) * rafflePrice
	totalRaffles := includedRaffles + req.AdditionalRaffles

	order := &models.Order{
		CustomerName:      req.CustomerName,
		Grade:             req.Grade,
		Section:           req.Section,
		PackageType:       req.PackageType,
		DesignType:        designType,
		StandardDesignID:  standardDesignID,
		IncludedRaffles:   includedRaffles,
		AdditionalRaffles: req.AdditionalRaffles,
		TotalRaffles:      totalRaffles,
		RaffleCost:        raffleCost,
		PackageBaseCost:   baseCost,
		TotalAmount:       baseCost + raffleCost,
		PaymentMethod:     paymentMethod,
		GcashReference:    gcashReference,
		OrderStatus:       models.OrderStatusPending,
		PhotoStatus:       models.PhotoStatusAwaiting,
	}

	project := &models.Project{
		Name:         req.CustomerName + " - " + req.Grade + " " + req.Section,
		CustomerName: &req.CustomerName,
		Grade:        &req.Grade,
		Section:      &req.Section,
		PackageType:  &req.PackageType,
		DesignType:   &designType,
		Status:       models.ProjectStatusAwaitingPhoto,
	}

	entries := make([]models.RaffleEntry, totalRaffles)
	for i := range entries {
		entries[i] = models.RaffleEntry{
			CustomerName: req.CustomerName,
			Grade:        req.Grade,
			Section:      req.Section,
			RaffleNumber: i + 1,
		}
	}

	bundle, err := h.store.CreateOrderBundle(c.Request.Context(), order, project, entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create order", Message: err.Error()})
		return
	}

	log.Info().
		Str("order_id", bundle.Order.ID.String()).
		Str("customer", bundle.Order.CustomerName).
		Int("package_type", bundle.Order.PackageType).
		Int("raffle_entries", len(bundle.RaffleEntries)).
		Msg("order created")

	c.JSON(http.StatusCreated, bundle)
}

// UpdateOrder godoc
// @Summary     Update order fields
// @Description Applies a partial update; keys outside the orders allow-list are dropped
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Order ID (UUID)"
// @Param       request body map[string]interface{} true "Fields to update"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{id} [patch]
func (h *OrdersHandler) UpdateOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.store.UpdateOrderFields(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to update order", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// BulkUpdateOrders godoc
// @Summary     Bulk update orders
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.BulkUpdateOrdersRequest true "IDs and patch"
// @Success     200 {object} models.BulkUpdateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/bulk-update [post]
func (h *OrdersHandler) BulkUpdateOrders(c *gin.Context) {
	var req models.BulkUpdateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id", Message: raw})
			return
		}
		ids = append(ids, id)
	}

	updated, err := h.store.BulkUpdateOrders(c.Request.Context(), ids, req.Patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to bulk update orders", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.BulkUpdateResponse{Updated: updated})
}

// DeliverOrder godoc
// @Summary     Mark an order delivered
// @Description Moves a packed order to delivered and records the handover details
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Order ID (UUID)"
// @Param       request body models.DeliverOrderRequest false "Delivery details"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{id}/deliver [post]
func (h *OrdersHandler) DeliverOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	var req models.DeliverOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get order", Message: err.Error()})
		return
	}
	if !order.OrderStatus.CanTransitionTo(models.OrderStatusDelivered) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "order is not ready for delivery",
			Message: "current status: " + string(order.OrderStatus),
		})
		return
	}

	payload := map[string]interface{}{
		"order_status":  string(models.OrderStatusDelivered),
		"delivery_date": time.Now(),
	}
	if req.Recipient != nil {
		payload["delivery_recipient"] = *req.Recipient
	}
	if req.Notes != nil {
		payload["delivery_notes"] = *req.Notes
	}

	updated, err := h.store.UpdateOrderFields(c.Request.Context(), id, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to deliver order", Message: err.Error()})
		return
	}

	log.Info().
		Str("order_id", id.String()).
		Str("customer", updated.CustomerName).
		Msg("order delivered")

	c.JSON(http.StatusOK, updated)
}
