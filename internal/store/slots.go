package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"photobooth-backend/internal/models"
)

const slotFields = `id, template_id, position, order_id, project_id, photo_url,
	student_name, grade, section, package_type, inserted_at`

type SlotFilter struct {
	TemplateIDs []uuid.UUID
	OrderIDs    []uuid.UUID
}

func (c *Client) ListSlots(ctx context.Context, filter SlotFilter) ([]models.TemplateSlot, error) {
	var where []string
	var args []interface{}

	if len(filter.TemplateIDs) > 0 {
		args = append(args, pq.Array(filter.TemplateIDs))
		where = append(where, fmt.Sprintf("template_id = ANY($%d::uuid[])", len(args)))
	}
	if len(filter.OrderIDs) > 0 {
		args = append(args, pq.Array(filter.OrderIDs))
		where = append(where, fmt.Sprintf("order_id = ANY($%d::uuid[])", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM template_slots", slotFields)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY position ASC"

	var slots []models.TemplateSlot
	if err := c.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list template slots: %w", err)
	}
	return slots, nil
}

func (c *Client) SlotsForTemplate(ctx context.Context, templateID uuid.UUID) ([]models.TemplateSlot, error) {
	return c.ListSlots(ctx, SlotFilter{TemplateIDs: []uuid.UUID{templateID}})
}

// SlotsForOrderInStatuses returns the order's slots restricted to templates
// in the given statuses, most recently inserted first. The allocator uses it
// to find slots still in the packing stage.
func (c *Client) SlotsForOrderInStatuses(ctx context.Context, orderID uuid.UUID, statuses []models.TemplateStatus) ([]models.TemplateSlot, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := `
		SELECT ts.id, ts.template_id, ts.position, ts.order_id, ts.project_id,
			ts.photo_url, ts.student_name, ts.grade, ts.section, ts.package_type,
			ts.inserted_at
		FROM template_slots ts
		JOIN print_templates pt ON pt.id = ts.template_id
		WHERE ts.order_id = $1 AND pt.status = ANY($2::text[])
		ORDER BY ts.inserted_at DESC, ts.position ASC`

	var slots []models.TemplateSlot
	if err := c.db.SelectContext(ctx, &slots, query, orderID, pq.Array(values)); err != nil {
		return nil, fmt.Errorf("failed to fetch slots for order: %w", err)
	}
	return slots, nil
}

// UpsertSlots inserts the given slots, overwriting the payload of any slot
// already occupying the same (template_id, position).
func (c *Client) UpsertSlots(ctx context.Context, slots []models.TemplateSlot) ([]models.TemplateSlot, error) {
	if len(slots) == 0 {
		return nil, nil
	}

	var placeholders []string
	var args []interface{}
	for i, slot := range slots {
		base := i * 9
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args, slot.TemplateID, slot.Position, slot.OrderID,
			slot.ProjectID, slot.PhotoURL, slot.StudentName, slot.Grade,
			slot.Section, slot.PackageType)
	}

	query := fmt.Sprintf(`
		INSERT INTO template_slots
			(template_id, position, order_id, project_id, photo_url, student_name, grade, section, package_type)
		VALUES %s
		ON CONFLICT (template_id, position)
		DO UPDATE SET
			order_id = EXCLUDED.order_id,
			project_id = EXCLUDED.project_id,
			photo_url = EXCLUDED.photo_url,
			student_name = EXCLUDED.student_name,
			grade = EXCLUDED.grade,
			section = EXCLUDED.section,
			package_type = EXCLUDED.package_type,
			inserted_at = NOW()
		RETURNING %s`, strings.Join(placeholders, ", "), slotFields)

	var created []models.TemplateSlot
	if err := c.db.SelectContext(ctx, &created, query, args...); err != nil {
		return nil, fmt.Errorf("failed to upsert template slots: %w", err)
	}
	return created, nil
}

func (c *Client) DeleteSlots(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var deleted []uuid.UUID
	err := c.db.SelectContext(ctx, &deleted,
		"DELETE FROM template_slots WHERE id = ANY($1::uuid[]) RETURNING id",
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to delete template slots: %w", err)
	}
	return deleted, nil
}

func (c *Client) OrderIDsForTemplate(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := c.db.SelectContext(ctx, &ids, `
		SELECT DISTINCT order_id FROM template_slots
		WHERE template_id = $1 AND order_id IS NOT NULL`,
		templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order ids for template: %w", err)
	}
	return ids, nil
}

type printedSummaryRow struct {
	OrderID         uuid.UUID      `db:"order_id"`
	PrintedCount    int            `db:"printed_count"`
	TemplateNumbers pq.StringArray `db:"template_numbers"`
	PrintedAt       *time.Time     `db:"printed_at"`
}

// PrintedSlotSummaries counts, per order, how many of its slots sit in
// printed templates. LEAST caps the count at the order's package type so
// historical duplicate rows cannot overcount.
func (c *Client) PrintedSlotSummaries(ctx context.Context, orderIDs []uuid.UUID) ([]models.PrintedSummary, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var rows []printedSummaryRow
	err := c.db.SelectContext(ctx, &rows, `
		SELECT
			ts.order_id,
			LEAST(
				COUNT(*)::int,
				COALESCE(MAX(o.package_type), COUNT(*))::int
			) AS printed_count,
			COALESCE(ARRAY_AGG(DISTINCT pt.template_number), ARRAY[]::text[]) AS template_numbers,
			MAX(pt.printed_at) AS printed_at
		FROM template_slots ts
		JOIN print_templates pt ON pt.id = ts.template_id
		LEFT JOIN orders o ON o.id = ts.order_id
		WHERE pt.status = 'printed' AND ts.order_id = ANY($1::uuid[])
		GROUP BY ts.order_id`,
		pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch printed summaries: %w", err)
	}

	summaries := make([]models.PrintedSummary, len(rows))
	for i, row := range rows {
		summaries[i] = models.PrintedSummary{
			OrderID:         row.OrderID,
			PrintedCount:    row.PrintedCount,
			TemplateNumbers: row.TemplateNumbers,
			PrintedAt:       row.PrintedAt,
		}
	}
	return summaries, nil
}
