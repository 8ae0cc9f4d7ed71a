package printing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"photobooth-backend/internal/models"
)

// Store is the persistence surface the allocator and lifecycle need. The
// Postgres client in internal/store implements it; tests use an in-memory
// double.
type Store interface {
	// LatestFillingTemplate returns the newest template still accepting
	// slots, or nil when there is none.
	LatestFillingTemplate(ctx context.Context) (*models.PrintTemplate, error)
	// CreateNextTemplate creates an empty filling template carrying the next
	// year-scoped template number.
	CreateNextTemplate(ctx context.Context) (*models.PrintTemplate, error)
	GetPrintTemplate(ctx context.Context, id uuid.UUID) (*models.PrintTemplate, error)

	SlotsForTemplate(ctx context.Context, templateID uuid.UUID) ([]models.TemplateSlot, error)
	SlotsForOrderInStatuses(ctx context.Context, orderID uuid.UUID, statuses []models.TemplateStatus) ([]models.TemplateSlot, error)
	UpsertSlots(ctx context.Context, slots []models.TemplateSlot) ([]models.TemplateSlot, error)
	DeleteSlots(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	UpdateTemplateFill(ctx context.Context, id uuid.UUID, slotsUsed int, status models.TemplateStatus, completedAt *time.Time) error
	SetTemplateDownloaded(ctx context.Context, id uuid.UUID, finalImageURL *string) error
	SetTemplatePrinted(ctx context.Context, id uuid.UUID) error

	OrderIDsForTemplate(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error)
	OrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Order, error)
	BulkUpdateOrderStatus(ctx context.Context, ids []uuid.UUID, status models.OrderStatus, packedDate *time.Time) (int, error)
	PrintedSlotSummaries(ctx context.Context, orderIDs []uuid.UUID) ([]models.PrintedSummary, error)
}
