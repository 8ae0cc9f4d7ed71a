package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"photobooth-backend/internal/handlers"
	"photobooth-backend/internal/models"
)

// Create-order validation runs before any database access, so a handler
// with no store behind it is enough here.
func ordersTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewOrdersHandler(nil)
	router.POST("/orders", handler.CreateOrder)
	return router
}

func postOrder(t *testing.T, router *gin.Engine, body models.CreateOrderRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req, _ := http.NewRequest("POST", "/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderRejectsBadPackageType(t *testing.T) {
	router := ordersTestRouter()

	for _, pkg := range []int{1, 3, 6} {
		w := postOrder(t, router, models.CreateOrderRequest{
			CustomerName: "Maria Santos",
			Grade:        "Grade 6",
			Section:      "Sampaguita",
			PackageType:  pkg,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "package_type %d", pkg)
		assert.Contains(t, w.Body.String(), "package_type")
	}
}

func TestCreateOrderRejectsTooManyRaffles(t *testing.T) {
	router := ordersTestRouter()

	// Package 2 allows at most one extra ticket, package 4 at most three.
	w := postOrder(t, router, models.CreateOrderRequest{
		CustomerName:      "Maria Santos",
		Grade:             "Grade 6",
		Section:           "Sampaguita",
		PackageType:       2,
		AdditionalRaffles: 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postOrder(t, router, models.CreateOrderRequest{
		CustomerName:      "Maria Santos",
		Grade:             "Grade 6",
		Section:           "Sampaguita",
		PackageType:       4,
		AdditionalRaffles: 4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRequiresGcashReference(t *testing.T) {
	router := ordersTestRouter()

	w := postOrder(t, router, models.CreateOrderRequest{
		CustomerName:  "Maria Santos",
		Grade:         "Grade 6",
		Section:       "Sampaguita",
		PackageType:   2,
		PaymentMethod: "gcash",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "gcash_reference")
}

func TestCreateOrderRejectsMissingFields(t *testing.T) {
	router := ordersTestRouter()

	w := postOrder(t, router, models.CreateOrderRequest{PackageType: 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
