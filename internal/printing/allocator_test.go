package printing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photobooth-backend/internal/models"
)

func allocationRequest(store *memStore, packageType int, photoURL string) (AllocationRequest, *models.Order) {
	order := store.addOrder(packageType)
	return AllocationRequest{
		OrderID:     order.ID,
		ProjectID:   uuid.New(),
		PhotoURL:    photoURL,
		StudentName: "Maria Santos",
		Grade:       "Grade 6",
		Section:     "Sampaguita",
		PackageType: packageType,
	}, order
}

// templateHolding returns the template carrying the order's slots, failing
// the test if the order holds none.
func templateHolding(t *testing.T, store *memStore, orderID uuid.UUID) uuid.UUID {
	t.Helper()
	for _, slot := range store.slots {
		if slot.OrderID != nil && *slot.OrderID == orderID {
			return slot.TemplateID
		}
	}
	t.Fatalf("order %s holds no slots", orderID)
	return uuid.Nil
}

func TestSlotsNeeded(t *testing.T) {
	assert.Equal(t, 2, SlotsNeeded(2))
	assert.Equal(t, 4, SlotsNeeded(4))
	// Anything unexpected falls back to 2.
	assert.Equal(t, 2, SlotsNeeded(0))
	assert.Equal(t, 2, SlotsNeeded(3))
	assert.Equal(t, 2, SlotsNeeded(99))
}

func TestAllocateAssignsPackageSlots(t *testing.T) {
	tests := []struct {
		name        string
		packageType int
		wantSlots   int
	}{
		{name: "package 2 takes two slots", packageType: 2, wantSlots: 2},
		{name: "package 4 takes four slots", packageType: 4, wantSlots: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			allocator := NewAllocator(store)
			req, order := allocationRequest(store, tt.packageType, "https://cdn.example/strip.png")

			require.NoError(t, allocator.Allocate(context.Background(), req))

			slots := store.slotsForOrder(order.ID)
			require.Len(t, slots, tt.wantSlots)

			positions := make(map[int]bool)
			for _, slot := range slots {
				assert.False(t, positions[slot.Position], "duplicate position %d", slot.Position)
				positions[slot.Position] = true
				assert.Equal(t, "https://cdn.example/strip.png", *slot.PhotoURL)
				assert.Equal(t, "Maria Santos", *slot.StudentName)
			}

			require.Len(t, store.templates, 1)
			for _, template := range store.templates {
				assert.Equal(t, tt.wantSlots, template.SlotsUsed)
				assert.Equal(t, models.TemplateStatusFilling, template.Status)
				assert.Nil(t, template.CompletedAt)
			}
		})
	}
}

func TestAllocateIsIdempotentAndRewritesPhoto(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	req, order := allocationRequest(store, 4, "https://cdn.example/v1.png")

	require.NoError(t, allocator.Allocate(context.Background(), req))
	require.Len(t, store.slotsForOrder(order.ID), 4)

	// Re-save with a new export. Slot count must not grow and every slot
	// must carry the new photo.
	req.PhotoURL = "https://cdn.example/v2.png"
	require.NoError(t, allocator.Allocate(context.Background(), req))

	slots := store.slotsForOrder(order.ID)
	require.Len(t, slots, 4)
	for _, slot := range slots {
		assert.Equal(t, "https://cdn.example/v2.png", *slot.PhotoURL)
	}
	require.Len(t, store.templates, 1, "re-save must not create a new template")
}

func TestAllocateSpillsSecondOrderAcrossTemplates(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	ctx := context.Background()

	reqA, orderA := allocationRequest(store, 4, "https://cdn.example/a.png")
	require.NoError(t, allocator.Allocate(ctx, reqA))

	first, err := store.LatestFillingTemplate(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 4, first.SlotsUsed)

	reqB, orderB := allocationRequest(store, 4, "https://cdn.example/b.png")
	require.NoError(t, allocator.Allocate(ctx, reqB))

	// First template filled to capacity and marked complete.
	filled, err := store.GetPrintTemplate(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TemplateCapacity, filled.SlotsUsed)
	assert.Equal(t, models.TemplateStatusComplete, filled.Status)
	require.NotNil(t, filled.CompletedAt)

	// Second order holds 2 slots on the first sheet and 2 on a new one.
	require.Len(t, store.slotsForOrder(orderA.ID), 4)
	slotsB := store.slotsForOrder(orderB.ID)
	require.Len(t, slotsB, 4)

	onFirst := 0
	for _, slot := range slotsB {
		if slot.TemplateID == first.ID {
			onFirst++
		}
	}
	assert.Equal(t, 2, onFirst)

	require.Len(t, store.templates, 2)
	second, err := store.LatestFillingTemplate(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, second.SlotsUsed)
	assert.Equal(t, models.TemplateStatusFilling, second.Status)
}

func TestAllocateDropsSurplusSlotsOnDownsize(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	ctx := context.Background()

	// Fill a sheet completely: one package-4 order and one package-2 order.
	reqBig, orderBig := allocationRequest(store, 4, "https://cdn.example/big.png")
	require.NoError(t, allocator.Allocate(ctx, reqBig))
	reqSmall, _ := allocationRequest(store, 2, "https://cdn.example/small.png")
	require.NoError(t, allocator.Allocate(ctx, reqSmall))

	templateID := templateHolding(t, store, orderBig.ID)
	full, err := store.GetPrintTemplate(ctx, templateID)
	require.NoError(t, err)
	require.Equal(t, models.TemplateStatusComplete, full.Status)

	// The big order is corrected down to package 2: two of its four slots
	// must be reclaimed and the sheet reopened.
	reqBig.PackageType = 2
	require.NoError(t, allocator.Allocate(ctx, reqBig))

	require.Len(t, store.slotsForOrder(orderBig.ID), 2)

	reopened, err := store.GetPrintTemplate(ctx, templateID)
	require.NoError(t, err)
	assert.Equal(t, 4, reopened.SlotsUsed)
	assert.Equal(t, models.TemplateStatusFilling, reopened.Status)
	assert.Nil(t, reopened.CompletedAt, "completed_at clears when the sheet drops below capacity")
}

func TestAllocateForcesCompleteOnStaleFillingTemplate(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	ctx := context.Background()

	// A sheet that is physically full but still marked filling (stale
	// slots_used from a historical write).
	corrupt, err := store.CreateNextTemplate(ctx)
	require.NoError(t, err)
	blocker := store.addOrder(2)
	for pos := 1; pos <= models.TemplateCapacity; pos++ {
		_, err := store.UpsertSlots(ctx, []models.TemplateSlot{{
			TemplateID: corrupt.ID,
			Position:   pos,
			OrderID:    &blocker.ID,
		}})
		require.NoError(t, err)
	}

	req, order := allocationRequest(store, 2, "https://cdn.example/next.png")
	require.NoError(t, allocator.Allocate(ctx, req))

	// The stale sheet got closed; the new order landed on a fresh one.
	closed, err := store.GetPrintTemplate(ctx, corrupt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusComplete, closed.Status)

	slots := store.slotsForOrder(order.ID)
	require.Len(t, slots, 2)
	for _, slot := range slots {
		assert.NotEqual(t, corrupt.ID, slot.TemplateID)
	}
}

func TestAllocateIgnoresSlotsInDownloadedTemplates(t *testing.T) {
	store := newMemStore()
	allocator := NewAllocator(store)
	ctx := context.Background()

	req, order := allocationRequest(store, 2, "https://cdn.example/v1.png")
	require.NoError(t, allocator.Allocate(ctx, req))

	// Ship the sheet: downloaded templates have left the packing stage.
	templateID := templateHolding(t, store, order.ID)
	now := time.Now()
	store.templates[templateID].Status = models.TemplateStatusDownloaded
	store.templates[templateID].DownloadedAt = &now

	req.PhotoURL = "https://cdn.example/v2.png"
	require.NoError(t, allocator.Allocate(ctx, req))

	// The downloaded slots stay untouched; the re-save got fresh ones.
	slots := store.slotsForOrder(order.ID)
	require.Len(t, slots, 4)
	for _, slot := range slots {
		if slot.TemplateID == templateID {
			assert.Equal(t, "https://cdn.example/v1.png", *slot.PhotoURL)
		} else {
			assert.Equal(t, "https://cdn.example/v2.png", *slot.PhotoURL)
		}
	}
}
