package printing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"photobooth-backend/internal/models"
)

// memStore is an in-memory Store double for allocator and lifecycle tests.
type memStore struct {
	templates map[uuid.UUID]*models.PrintTemplate
	slots     map[uuid.UUID]*models.TemplateSlot
	orders    map[uuid.UUID]*models.Order

	templateSeq int
	insertSeq   int
	baseTime    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		templates: make(map[uuid.UUID]*models.PrintTemplate),
		slots:     make(map[uuid.UUID]*models.TemplateSlot),
		orders:    make(map[uuid.UUID]*models.Order),
		baseTime:  time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) addOrder(packageType int) *models.Order {
	order := &models.Order{
		ID:          uuid.New(),
		PackageType: packageType,
		OrderStatus: models.OrderStatusCompleted,
	}
	m.orders[order.ID] = order
	return order
}

func (m *memStore) LatestFillingTemplate(ctx context.Context) (*models.PrintTemplate, error) {
	var latest *models.PrintTemplate
	for _, t := range m.templates {
		if t.Status != models.TemplateStatusFilling {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
			latest = t
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *memStore) CreateNextTemplate(ctx context.Context) (*models.PrintTemplate, error) {
	m.templateSeq++
	template := &models.PrintTemplate{
		ID:             uuid.New(),
		TemplateNumber: fmt.Sprintf("TMPL-2026-%04d", m.templateSeq),
		Status:         models.TemplateStatusFilling,
		TotalSlots:     models.TemplateCapacity,
		CreatedAt:      m.baseTime.Add(time.Duration(m.templateSeq) * time.Minute),
	}
	m.templates[template.ID] = template
	copied := *template
	return &copied, nil
}

func (m *memStore) GetPrintTemplate(ctx context.Context, id uuid.UUID) (*models.PrintTemplate, error) {
	template, ok := m.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s not found", id)
	}
	copied := *template
	return &copied, nil
}

func (m *memStore) SlotsForTemplate(ctx context.Context, templateID uuid.UUID) ([]models.TemplateSlot, error) {
	var out []models.TemplateSlot
	for _, slot := range m.slots {
		if slot.TemplateID == templateID {
			out = append(out, *slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memStore) SlotsForOrderInStatuses(ctx context.Context, orderID uuid.UUID, statuses []models.TemplateStatus) ([]models.TemplateSlot, error) {
	allowed := make(map[models.TemplateStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	var out []models.TemplateSlot
	for _, slot := range m.slots {
		if slot.OrderID == nil || *slot.OrderID != orderID {
			continue
		}
		template, ok := m.templates[slot.TemplateID]
		if !ok || !allowed[template.Status] {
			continue
		}
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InsertedAt.After(out[j].InsertedAt) })
	return out, nil
}

func (m *memStore) UpsertSlots(ctx context.Context, slots []models.TemplateSlot) ([]models.TemplateSlot, error) {
	out := make([]models.TemplateSlot, 0, len(slots))
	for _, incoming := range slots {
		m.insertSeq++
		incoming.InsertedAt = m.baseTime.Add(time.Duration(m.insertSeq) * time.Second)

		var existing *models.TemplateSlot
		for _, slot := range m.slots {
			if slot.TemplateID == incoming.TemplateID && slot.Position == incoming.Position {
				existing = slot
				break
			}
		}
		if existing != nil {
			incoming.ID = existing.ID
		} else {
			incoming.ID = uuid.New()
		}
		copied := incoming
		m.slots[incoming.ID] = &copied
		out = append(out, incoming)
	}
	return out, nil
}

func (m *memStore) DeleteSlots(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var deleted []uuid.UUID
	for _, id := range ids {
		if _, ok := m.slots[id]; ok {
			delete(m.slots, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (m *memStore) UpdateTemplateFill(ctx context.Context, id uuid.UUID, slotsUsed int, status models.TemplateStatus, completedAt *time.Time) error {
	template, ok := m.templates[id]
	if !ok {
		return fmt.Errorf("template %s not found", id)
	}
	template.SlotsUsed = slotsUsed
	template.Status = status
	template.CompletedAt = completedAt
	return nil
}

func (m *memStore) SetTemplateDownloaded(ctx context.Context, id uuid.UUID, finalImageURL *string) error {
	template, ok := m.templates[id]
	if !ok {
		return fmt.Errorf("template %s not found", id)
	}
	now := time.Now()
	template.Status = models.TemplateStatusDownloaded
	template.DownloadedAt = &now
	if finalImageURL != nil {
		template.FinalImageURL = finalImageURL
	}
	return nil
}

func (m *memStore) SetTemplatePrinted(ctx context.Context, id uuid.UUID) error {
	template, ok := m.templates[id]
	if !ok {
		return fmt.Errorf("template %s not found", id)
	}
	now := time.Now()
	template.Status = models.TemplateStatusPrinted
	template.PrintedAt = &now
	return nil
}

func (m *memStore) OrderIDsForTemplate(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, slot := range m.slots {
		if slot.TemplateID != templateID || slot.OrderID == nil {
			continue
		}
		if !seen[*slot.OrderID] {
			seen[*slot.OrderID] = true
			out = append(out, *slot.OrderID)
		}
	}
	return out, nil
}

func (m *memStore) OrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, id := range ids {
		if order, ok := m.orders[id]; ok {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *memStore) BulkUpdateOrderStatus(ctx context.Context, ids []uuid.UUID, status models.OrderStatus, packedDate *time.Time) (int, error) {
	updated := 0
	for _, id := range ids {
		order, ok := m.orders[id]
		if !ok {
			continue
		}
		order.OrderStatus = status
		if packedDate != nil {
			order.PackedDate = packedDate
		}
		updated++
	}
	return updated, nil
}

func (m *memStore) PrintedSlotSummaries(ctx context.Context, orderIDs []uuid.UUID) ([]models.PrintedSummary, error) {
	counts := make(map[uuid.UUID]int)
	for _, slot := range m.slots {
		if slot.OrderID == nil {
			continue
		}
		template, ok := m.templates[slot.TemplateID]
		if !ok || template.Status != models.TemplateStatusPrinted {
			continue
		}
		counts[*slot.OrderID]++
	}

	var out []models.PrintedSummary
	for _, orderID := range orderIDs {
		count, ok := counts[orderID]
		if !ok {
			continue
		}
		if order, exists := m.orders[orderID]; exists && count > order.PackageType {
			count = order.PackageType
		}
		out = append(out, models.PrintedSummary{OrderID: orderID, PrintedCount: count})
	}
	return out, nil
}

// slotsForOrder returns every slot held by the order, across all templates.
func (m *memStore) slotsForOrder(orderID uuid.UUID) []models.TemplateSlot {
	var out []models.TemplateSlot
	for _, slot := range m.slots {
		if slot.OrderID != nil && *slot.OrderID == orderID {
			out = append(out, *slot)
		}
	}
	return out
}
