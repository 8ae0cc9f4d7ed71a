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

const orderFields = `id, customer_name, grade, section, package_type, design_type,
	standard_design_id, included_raffles, additional_raffles, total_raffles,
	raffle_cost, package_base_cost, total_amount, payment_method, gcash_reference,
	order_status, photo_status, order_date, photo_uploaded_date,
	project_completed_date, packed_date, delivery_date, delivery_recipient,
	delivery_notes, created_at, updated_at`

type OrderFilter struct {
	IDs      []uuid.UUID
	Statuses []models.OrderStatus
}

func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var where []string
	var args []interface{}

	if len(filter.IDs) > 0 {
		args = append(args, pq.Array(filter.IDs))
		where = append(where, fmt.Sprintf("id = ANY($%d::uuid[])", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("order_status = ANY($%d::text[])", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM orders", orderFields)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY order_date DESC"

	var orders []models.Order
	if err := c.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderFields)
	if err := c.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// CreateOrderBundle creates the order, its pending editing project and the
// numbered raffle entries in one transaction, so a failure anywhere leaves
// nothing behind.
func (c *Client) CreateOrderBundle(ctx context.Context, order *models.Order, project *models.Project, entries []models.RaffleEntry) (*models.CreateOrderResponse, error) {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var created models.Order
	err = tx.GetContext(ctx, &created, fmt.Sprintf(`
		INSERT INTO orders (customer_name, grade, section, package_type, design_type,
			standard_design_id, included_raffles, additional_raffles, total_raffles,
			raffle_cost, package_base_cost, total_amount, payment_method, gcash_reference,
			order_status, photo_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING %s`, orderFields),
		order.CustomerName, order.Grade, order.Section, order.PackageType,
		order.DesignType, order.StandardDesignID, order.IncludedRaffles,
		order.AdditionalRaffles, order.TotalRaffles, order.RaffleCost,
		order.PackageBaseCost, order.TotalAmount, order.PaymentMethod,
		order.GcashReference, order.OrderStatus, order.PhotoStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	var createdProject models.Project
	err = tx.GetContext(ctx, &createdProject, fmt.Sprintf(`
		INSERT INTO projects (name, order_id, customer_name, grade, section,
			package_type, design_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, projectFields),
		project.Name, created.ID, project.CustomerName, project.Grade,
		project.Section, project.PackageType, project.DesignType, project.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	createdEntries := make([]models.RaffleEntry, 0, len(entries))
	for _, entry := range entries {
		var row models.RaffleEntry
		err = tx.GetContext(ctx, &row, `
			INSERT INTO raffle_entries (order_id, customer_name, grade, section, raffle_number)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, order_id, customer_name, grade, section, raffle_number, is_winner, won_at, created_at`,
			created.ID, entry.CustomerName, entry.Grade, entry.Section, entry.RaffleNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create raffle entry: %w", err)
		}
		createdEntries = append(createdEntries, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.CreateOrderResponse{
		Order:         created,
		Project:       createdProject,
		RaffleEntries: createdEntries,
	}, nil
}

// UpdateOrderFields applies a sanitized partial update. Unknown keys in the
// payload are dropped, matching the column allow-list behavior of the API.
func (c *Client) UpdateOrderFields(ctx context.Context, id uuid.UUID, payload map[string]interface{}) (*models.Order, error) {
	clean := sanitizePayload(payload, orderColumns)
	query, args, err := buildUpdate("orders", clean, id, true)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := c.db.GetContext(ctx, &order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return &order, nil
}

func (c *Client) BulkUpdateOrders(ctx context.Context, ids []uuid.UUID, payload map[string]interface{}) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	clean := sanitizePayload(payload, orderColumns)
	if len(clean) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(clean))
	for key := range clean {
		keys = append(keys, key)
	}

	setters := make([]string, 0, len(keys)+1)
	args := make([]interface{}, 0, len(keys)+1)
	for i, key := range keys {
		setters = append(setters, fmt.Sprintf("%q = $%d", key, i+1))
		args = append(args, clean[key])
	}
	setters = append(setters, "updated_at = NOW()")
	args = append(args, pq.Array(ids))

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = ANY($%d::uuid[])",
		strings.Join(setters, ", "), len(args))

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update orders: %w", err)
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

// BulkUpdateOrderStatus is the set-based status cascade used by the template
// lifecycle. packedDate, when non-nil, is written alongside the status.
func (c *Client) BulkUpdateOrderStatus(ctx context.Context, ids []uuid.UUID, status models.OrderStatus, packedDate *time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var res sql.Result
	var err error
	if packedDate != nil {
		res, err = c.db.ExecContext(ctx, `
			UPDATE orders SET order_status = $1, packed_date = $2, updated_at = NOW()
			WHERE id = ANY($3::uuid[])`,
			status, *packedDate, pq.Array(ids))
	} else {
		res, err = c.db.ExecContext(ctx, `
			UPDATE orders SET order_status = $1, updated_at = NOW()
			WHERE id = ANY($2::uuid[])`,
			status, pq.Array(ids))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update order status: %w", err)
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

func (c *Client) OrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Order, error) {
	return c.ListOrders(ctx, OrderFilter{IDs: ids})
}
