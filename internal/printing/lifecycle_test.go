package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photobooth-backend/internal/models"
)

func TestMarkDownloadedCascadesOrders(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	lifecycle := NewLifecycle(store)
	ctx := context.Background()

	reqA, orderA := allocationRequest(store, 4, "https://cdn.example/a.png")
	require.NoError(t, allocator.Allocate(ctx, reqA))
	reqB, orderB := allocationRequest(store, 2, "https://cdn.example/b.png")
	require.NoError(t, allocator.Allocate(ctx, reqB))

	templateID := templateHolding(t, store, orderA.ID)
	bystander := store.addOrder(2)

	finalURL := "https://cdn.example/sheet.png"
	template, err := lifecycle.MarkDownloaded(ctx, templateID, &finalURL)
	require.NoError(t, err)

	assert.Equal(t, models.TemplateStatusDownloaded, template.Status)
	require.NotNil(t, template.DownloadedAt)
	require.NotNil(t, template.FinalImageURL)
	assert.Equal(t, finalURL, *template.FinalImageURL)

	// Every order on the sheet moved; the bystander did not.
	assert.Equal(t, models.OrderStatusToPrint, store.orders[orderA.ID].OrderStatus)
	assert.Equal(t, models.OrderStatusToPrint, store.orders[orderB.ID].OrderStatus)
	assert.Equal(t, models.OrderStatusCompleted, store.orders[bystander.ID].OrderStatus)
}

func TestMarkDownloadedRejectsFillingTemplate(t *testing.T) {
	store := newMemStore()
	lifecycle := NewLifecycle(store)
	ctx := context.Background()

	template, err := store.CreateNextTemplate(ctx)
	require.NoError(t, err)

	_, err = lifecycle.MarkDownloaded(ctx, template.ID, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)

	unchanged, err := store.GetPrintTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusFilling, unchanged.Status)
}

func TestMarkPrintedPacksFullyPrintedOrders(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	lifecycle := NewLifecycle(store)
	ctx := context.Background()

	// Three package-4 orders fill two sheets exactly; the second order
	// straddles both.
	reqA, orderA := allocationRequest(store, 4, "https://cdn.example/a.png")
	require.NoError(t, allocator.Allocate(ctx, reqA))
	reqB, orderB := allocationRequest(store, 4, "https://cdn.example/b.png")
	require.NoError(t, allocator.Allocate(ctx, reqB))
	reqC, orderC := allocationRequest(store, 4, "https://cdn.example/c.png")
	require.NoError(t, allocator.Allocate(ctx, reqC))

	firstID := templateHolding(t, store, orderA.ID)
	secondID := templateHolding(t, store, orderC.ID)
	require.NotEqual(t, firstID, secondID)

	straddles := false
	for _, slot := range store.slotsForOrder(orderB.ID) {
		if slot.TemplateID == secondID {
			straddles = true
		}
	}
	require.True(t, straddles, "second order should straddle two sheets")

	_, err := lifecycle.MarkDownloaded(ctx, firstID, nil)
	require.NoError(t, err)
	first, err := lifecycle.MarkPrinted(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusPrinted, first.Status)
	require.NotNil(t, first.PrintedAt)

	// Orders entirely on the first sheet are packed; the straddler is not.
	assert.Equal(t, models.OrderStatusPacked, store.orders[orderA.ID].OrderStatus)
	require.NotNil(t, store.orders[orderA.ID].PackedDate)
	assert.NotEqual(t, models.OrderStatusPacked, store.orders[orderB.ID].OrderStatus)
	assert.NotEqual(t, models.OrderStatusPacked, store.orders[orderC.ID].OrderStatus)

	// Printing the second sheet completes the remaining orders.
	_, err = lifecycle.MarkDownloaded(ctx, secondID, nil)
	require.NoError(t, err)
	_, err = lifecycle.MarkPrinted(ctx, secondID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPacked, store.orders[orderB.ID].OrderStatus)
	assert.Equal(t, models.OrderStatusPacked, store.orders[orderC.ID].OrderStatus)
}

func TestMarkPrintedRequiresDownloadFirst(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	lifecycle := NewLifecycle(store)
	ctx := context.Background()

	req, order := allocationRequest(store, 2, "https://cdn.example/strip.png")
	require.NoError(t, allocator.Allocate(ctx, req))
	templateID := templateHolding(t, store, order.ID)

	_, err := lifecycle.MarkPrinted(ctx, templateID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}
