package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photobooth-backend/internal/models"
)

var ErrInvalidTransition = errors.New("invalid template status transition")

// Lifecycle drives a print template through complete -> downloaded ->
// printed and cascades the matching order status changes.
type Lifecycle struct {
	store Store
}

func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store}
}

// MarkDownloaded records the operator exporting the sheet. Every order with
// a slot on the template moves to to_print in one set-based update.
func (l *Lifecycle) MarkDownloaded(ctx context.Context, templateID uuid.UUID, finalImageURL *string) (*models.PrintTemplate, error) {
	template, err := l.store.GetPrintTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.Status.CanTransitionTo(models.TemplateStatusDownloaded) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, template.Status, models.TemplateStatusDownloaded)
	}

	if err := l.store.SetTemplateDownloaded(ctx, templateID, finalImageURL); err != nil {
		return nil, err
	}

	orderIDs, err := l.store.OrderIDsForTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	updated, err := l.store.BulkUpdateOrderStatus(ctx, orderIDs, models.OrderStatusToPrint, nil)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("template_number", template.TemplateNumber).
		Int("orders_moved", updated).
		Msg("template downloaded")

	return l.store.GetPrintTemplate(ctx, templateID)
}

// MarkPrinted records the physical print. Orders whose every expected slot
// now sits in a printed template move to packed; orders with slots spilled
// into an unprinted template stay where they are.
func (l *Lifecycle) MarkPrinted(ctx context.Context, templateID uuid.UUID) (*models.PrintTemplate, error) {
	template, err := l.store.GetPrintTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.Status.CanTransitionTo(models.TemplateStatusPrinted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, template.Status, models.TemplateStatusPrinted)
	}

	if err := l.store.SetTemplatePrinted(ctx, templateID); err != nil {
		return nil, err
	}

	orderIDs, err := l.store.OrderIDsForTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if len(orderIDs) > 0 {
		ready, err := l.fullyPrintedOrders(ctx, orderIDs)
		if err != nil {
			return nil, err
		}
		if len(ready) > 0 {
			now := time.Now()
			packed, err := l.store.BulkUpdateOrderStatus(ctx, ready, models.OrderStatusPacked, &now)
			if err != nil {
				return nil, err
			}
			log.Info().
				Str("template_number", template.TemplateNumber).
				Int("orders_packed", packed).
				Msg("template printed")
		}
	}

	return l.store.GetPrintTemplate(ctx, templateID)
}

// fullyPrintedOrders filters the given orders down to those whose printed
// slot count has reached their package type.
func (l *Lifecycle) fullyPrintedOrders(ctx context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error) {
	summaries, err := l.store.PrintedSlotSummaries(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	printedCounts := make(map[uuid.UUID]int, len(summaries))
	for _, summary := range summaries {
		printedCounts[summary.OrderID] = summary.PrintedCount
	}

	orders, err := l.store.OrdersByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	var ready []uuid.UUID
	for _, order := range orders {
		if printedCounts[order.ID] >= order.PackageType {
			ready = append(ready, order.ID)
		}
	}
	return ready, nil
}
