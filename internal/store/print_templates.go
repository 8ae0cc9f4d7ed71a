package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"photobooth-backend/internal/models"
)

const printTemplateFields = `id, template_number, status, slots_used, total_slots,
	final_image_url, created_at, completed_at, downloaded_at, printed_at`

func (c *Client) ListPrintTemplates(ctx context.Context, statuses []models.TemplateStatus) ([]models.PrintTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM print_templates", printTemplateFields)
	var args []interface{}
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		args = append(args, pq.Array(values))
		query += " WHERE status = ANY($1::text[])"
	}
	query += " ORDER BY created_at DESC"

	var templates []models.PrintTemplate
	if err := c.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list print templates: %w", err)
	}
	return templates, nil
}

func (c *Client) CountPrintTemplates(ctx context.Context) (int, error) {
	var count int
	if err := c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM print_templates"); err != nil {
		return 0, fmt.Errorf("failed to count print templates: %w", err)
	}
	return count, nil
}

func (c *Client) GetPrintTemplate(ctx context.Context, id uuid.UUID) (*models.PrintTemplate, error) {
	var template models.PrintTemplate
	query := fmt.Sprintf("SELECT %s FROM print_templates WHERE id = $1", printTemplateFields)
	if err := c.db.GetContext(ctx, &template, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get print template: %w", err)
	}
	return &template, nil
}

// LatestFillingTemplate returns the most recently created template still
// accepting slots, or nil when every template is full or beyond.
func (c *Client) LatestFillingTemplate(ctx context.Context) (*models.PrintTemplate, error) {
	var template models.PrintTemplate
	query := fmt.Sprintf(`
		SELECT %s FROM print_templates
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT 1`, printTemplateFields)
	if err := c.db.GetContext(ctx, &template, query, models.TemplateStatusFilling); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch filling template: %w", err)
	}
	return &template, nil
}

// CreateNextTemplate allocates the next TMPL-<year>-NNNN number and inserts
// an empty filling template. The per-year counter row is incremented inside a
// transaction holding the template-number advisory lock, so concurrent
// creations can never issue duplicate numbers.
func (c *Client) CreateNextTemplate(ctx context.Context) (*models.PrintTemplate, error) {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", templateNumberLockKey); err != nil {
		return nil, fmt.Errorf("failed to acquire template number lock: %w", err)
	}

	year := time.Now().Year()
	var seq int
	err = tx.GetContext(ctx, &seq, `
		INSERT INTO template_sequences (year, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = template_sequences.last_seq + 1
		RETURNING last_seq`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to advance template sequence: %w", err)
	}

	templateNumber := fmt.Sprintf("TMPL-%d-%04d", year, seq)

	var template models.PrintTemplate
	err = tx.GetContext(ctx, &template, fmt.Sprintf(`
		INSERT INTO print_templates (template_number, status, slots_used, total_slots)
		VALUES ($1, $2, 0, $3)
		RETURNING %s`, printTemplateFields),
		templateNumber, models.TemplateStatusFilling, models.TemplateCapacity,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create print template: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &template, nil
}

func (c *Client) UpdatePrintTemplateFields(ctx context.Context, id uuid.UUID, payload map[string]interface{}) (*models.PrintTemplate, error) {
	clean := sanitizePayload(payload, printTemplateColumns)
	query, args, err := buildUpdate("print_templates", clean, id, false)
	if err != nil {
		return nil, err
	}

	var template models.PrintTemplate
	if err := c.db.GetContext(ctx, &template, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update print template: %w", err)
	}
	return &template, nil
}

// UpdateTemplateFill writes the recomputed slot count and status after the
// allocator touches a template. completedAt nil clears the completion stamp
// (a template that dropped back below capacity).
func (c *Client) UpdateTemplateFill(ctx context.Context, id uuid.UUID, slotsUsed int, status models.TemplateStatus, completedAt *time.Time) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE print_templates
		SET slots_used = $1, status = $2, completed_at = $3
		WHERE id = $4`,
		slotsUsed, status, completedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update template fill: %w", err)
	}
	return nil
}

func (c *Client) SetTemplateDownloaded(ctx context.Context, id uuid.UUID, finalImageURL *string) error {
	setters := []string{"status = $1", "downloaded_at = NOW()"}
	args := []interface{}{models.TemplateStatusDownloaded}
	if finalImageURL != nil {
		args = append(args, *finalImageURL)
		setters = append(setters, fmt.Sprintf("final_image_url = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE print_templates SET %s WHERE id = $%d",
		strings.Join(setters, ", "), len(args))
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark template downloaded: %w", err)
	}
	return nil
}

func (c *Client) SetTemplatePrinted(ctx context.Context, id uuid.UUID) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE print_templates SET status = $1, printed_at = NOW() WHERE id = $2`,
		models.TemplateStatusPrinted, id)
	if err != nil {
		return fmt.Errorf("failed to mark template printed: %w", err)
	}
	return nil
}
