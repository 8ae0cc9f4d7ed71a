package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photobooth-backend/internal/models"
)

// Allocator places a finished photo strip into print-template slots.
// Repeated saves for the same order reuse the slots assigned earlier, so an
// order never grows beyond its package allowance.
type Allocator struct {
	store Store
}

func NewAllocator(store Store) *Allocator {
	return &Allocator{store: store}
}

// AllocationRequest carries the finished strip and the order metadata
// denormalized onto each slot.
type AllocationRequest struct {
	OrderID     uuid.UUID
	ProjectID   uuid.UUID
	PhotoURL    string
	StudentName string
	Grade       string
	Section     string
	PackageType int
}

// SlotsNeeded maps a package type to the slots it occupies. Anything other
// than package 4 falls back to 2.
func SlotsNeeded(packageType int) int {
	if packageType == 4 {
		return 4
	}
	return 2
}

// Allocate assigns the strip to slotsNeeded positions. It first rewrites the
// slots the order already holds in active (filling/complete) templates and
// drops any surplus, then fills the shortfall from the current filling
// template, creating new templates as needed.
func (a *Allocator) Allocate(ctx context.Context, req AllocationRequest) error {
	slotsNeeded := SlotsNeeded(req.PackageType)

	reused, err := a.reusePass(ctx, req, slotsNeeded)
	if err != nil {
		return err
	}

	remaining := slotsNeeded - reused
	for remaining > 0 {
		filled, err := a.fillPass(ctx, req, remaining)
		if err != nil {
			return err
		}
		remaining -= filled
	}
	return nil
}

// reusePass rewrites up to slotsNeeded previously assigned slots in place
// and deletes the rest, then reconciles every touched template. Returns how
// many slots were reused.
func (a *Allocator) reusePass(ctx context.Context, req AllocationRequest, slotsNeeded int) (int, error) {
	existing, err := a.store.SlotsForOrderInStatuses(ctx, req.OrderID, []models.TemplateStatus{
		models.TemplateStatusFilling,
		models.TemplateStatusComplete,
	})
	if err != nil {
		return 0, err
	}

	// A slot can show up twice when historical writes collided on the same
	// position; keep the first occurrence only.
	seen := make(map[string]bool, len(existing))
	unique := existing[:0]
	for _, slot := range existing {
		key := fmt.Sprintf("%s:%d", slot.TemplateID, slot.Position)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, slot)
	}

	reuse := unique
	var surplus []models.TemplateSlot
	if len(unique) > slotsNeeded {
		reuse = unique[:slotsNeeded]
		surplus = unique[slotsNeeded:]
	}

	touched := make(map[uuid.UUID]struct{})

	if len(reuse) > 0 {
		upserts := make([]models.TemplateSlot, len(reuse))
		for i, slot := range reuse {
			upserts[i] = a.slotPayload(req, slot.TemplateID, slot.Position)
			touched[slot.TemplateID] = struct{}{}
		}
		if _, err := a.store.UpsertSlots(ctx, upserts); err != nil {
			return 0, err
		}
	}

	if len(surplus) > 0 {
		ids := make([]uuid.UUID, len(surplus))
		for i, slot := range surplus {
			ids[i] = slot.ID
			touched[slot.TemplateID] = struct{}{}
		}
		if _, err := a.store.DeleteSlots(ctx, ids); err != nil {
			return 0, err
		}
	}

	for templateID := range touched {
		if err := a.reconcileTemplate(ctx, templateID); err != nil {
			return 0, err
		}
	}

	return len(reuse), nil
}

// fillPass puts up to remaining new slots on the current filling template
// and returns how many it placed. A filling template that turns out to have
// no free positions is forced complete so the next pass gets a fresh one.
func (a *Allocator) fillPass(ctx context.Context, req AllocationRequest, remaining int) (int, error) {
	template, err := a.activeTemplate(ctx)
	if err != nil {
		return 0, err
	}

	// Free positions come from a fresh slot query, not slots_used, which may
	// be stale under concurrent saves.
	slots, err := a.store.SlotsForTemplate(ctx, template.ID)
	if err != nil {
		return 0, err
	}

	occupied := make(map[int]bool, len(slots))
	for _, slot := range slots {
		occupied[slot.Position] = true
	}
	var free []int
	for pos := 1; pos <= template.TotalSlots; pos++ {
		if !occupied[pos] {
			free = append(free, pos)
		}
	}

	if len(free) == 0 {
		log.Warn().
			Str("template_number", template.TemplateNumber).
			Int("slot_count", len(slots)).
			Msg("filling template has no free positions, forcing complete")
		completedAt := template.CompletedAt
		if completedAt == nil {
			now := time.Now()
			completedAt = &now
		}
		if err := a.store.UpdateTemplateFill(ctx, template.ID, len(slots), models.TemplateStatusComplete, completedAt); err != nil {
			return 0, err
		}
		return 0, nil
	}

	toFill := remaining
	if toFill > len(free) {
		toFill = len(free)
	}

	upserts := make([]models.TemplateSlot, toFill)
	for i := 0; i < toFill; i++ {
		upserts[i] = a.slotPayload(req, template.ID, free[i])
	}
	if _, err := a.store.UpsertSlots(ctx, upserts); err != nil {
		return 0, err
	}

	if err := a.reconcileTemplate(ctx, template.ID); err != nil {
		return 0, err
	}
	return toFill, nil
}

func (a *Allocator) activeTemplate(ctx context.Context) (*models.PrintTemplate, error) {
	template, err := a.store.LatestFillingTemplate(ctx)
	if err != nil {
		return nil, err
	}
	if template != nil {
		return template, nil
	}
	return a.store.CreateNextTemplate(ctx)
}

// reconcileTemplate recounts a template's live slots and derives its status
// from the count: complete at capacity, filling below. completed_at is set
// on the first transition to complete and cleared whenever the template
// drops back below capacity.
func (a *Allocator) reconcileTemplate(ctx context.Context, templateID uuid.UUID) error {
	template, err := a.store.GetPrintTemplate(ctx, templateID)
	if err != nil {
		return err
	}
	slots, err := a.store.SlotsForTemplate(ctx, templateID)
	if err != nil {
		return err
	}

	count := len(slots)
	status := models.TemplateStatusFilling
	var completedAt *time.Time
	if count >= template.TotalSlots {
		status = models.TemplateStatusComplete
		if template.CompletedAt != nil {
			completedAt = template.CompletedAt
		} else {
			now := time.Now()
			completedAt = &now
		}
	}

	return a.store.UpdateTemplateFill(ctx, templateID, count, status, completedAt)
}

func (a *Allocator) slotPayload(req AllocationRequest, templateID uuid.UUID, position int) models.TemplateSlot {
	orderID := req.OrderID
	projectID := req.ProjectID
	photoURL := req.PhotoURL
	studentName := req.StudentName
	grade := req.Grade
	section := req.Section
	packageType := SlotsNeeded(req.PackageType)

	return models.TemplateSlot{
		TemplateID:  templateID,
		Position:    position,
		OrderID:     &orderID,
		ProjectID:   &projectID,
		PhotoURL:    &photoURL,
		StudentName: &studentName,
		Grade:       &grade,
		Section:     &section,
		PackageType: &packageType,
	}
}
