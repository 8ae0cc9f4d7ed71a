package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"photobooth-backend/internal/models"
)

const raffleEntryFields = `id, order_id, customer_name, grade, section,
	raffle_number, is_winner, won_at, created_at`

const raffleWinnerFields = `id, entry_id, order_id, customer_name, grade,
	section, won_at, prize_details`

func (c *Client) ListRaffleEntries(ctx context.Context, isWinner *bool) ([]models.RaffleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM raffle_entries", raffleEntryFields)
	var args []interface{}
	if isWinner != nil {
		query += " WHERE is_winner = $1"
		args = append(args, *isWinner)
	}
	query += " ORDER BY created_at ASC"

	var entries []models.RaffleEntry
	if err := c.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list raffle entries: %w", err)
	}
	return entries, nil
}

// ActiveEntries is the draw pool: every entry that has not won yet.
func (c *Client) ActiveEntries(ctx context.Context) ([]models.RaffleEntry, error) {
	notWon := false
	return c.ListRaffleEntries(ctx, &notWon)
}

func (c *Client) BulkCreateRaffleEntries(ctx context.Context, entries []models.RaffleEntry) ([]models.RaffleEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	created := make([]models.RaffleEntry, 0, len(entries))
	for _, entry := range entries {
		var row models.RaffleEntry
		err := c.db.GetContext(ctx, &row, fmt.Sprintf(`
			INSERT INTO raffle_entries (order_id, customer_name, grade, section, raffle_number)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING %s`, raffleEntryFields),
			entry.OrderID, entry.CustomerName, entry.Grade, entry.Section, entry.RaffleNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create raffle entry: %w", err)
		}
		created = append(created, row)
	}
	return created, nil
}

func (c *Client) UpdateRaffleEntryFields(ctx context.Context, id uuid.UUID, payload map[string]interface{}) (*models.RaffleEntry, error) {
	clean := sanitizePayload(payload, raffleEntryColumns)
	query, args, err := buildUpdate("raffle_entries", clean, id, false)
	if err != nil {
		return nil, err
	}

	var entry models.RaffleEntry
	if err := c.db.GetContext(ctx, &entry, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update raffle entry: %w", err)
	}
	return &entry, nil
}

// MarkEntryWinner flips is_winner on an entry that has not won yet. The
// is_winner guard in the predicate makes a second draw of the same entry
// impossible regardless of interleaving.
func (c *Client) MarkEntryWinner(ctx context.Context, entryID uuid.UUID) (*models.RaffleEntry, error) {
	var entry models.RaffleEntry
	err := c.db.GetContext(ctx, &entry, fmt.Sprintf(`
		UPDATE raffle_entries
		SET is_winner = TRUE, won_at = NOW()
		WHERE id = $1 AND is_winner = FALSE
		RETURNING %s`, raffleEntryFields),
		entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlreadyDrawn
		}
		return nil, fmt.Errorf("failed to mark raffle winner: %w", err)
	}
	return &entry, nil
}

func (c *Client) CreateRaffleWinner(ctx context.Context, winner *models.RaffleWinner) (*models.RaffleWinner, error) {
	var created models.RaffleWinner
	err := c.db.GetContext(ctx, &created, fmt.Sprintf(`
		INSERT INTO raffle_winners (entry_id, order_id, customer_name, grade, section, won_at, prize_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, raffleWinnerFields),
		winner.EntryID, winner.OrderID, winner.CustomerName, winner.Grade,
		winner.Section, winner.WonAt, winner.PrizeDetails,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create raffle winner: %w", err)
	}
	return &created, nil
}

func (c *Client) ListRaffleWinners(ctx context.Context) ([]models.RaffleWinner, error) {
	var winners []models.RaffleWinner
	query := fmt.Sprintf("SELECT %s FROM raffle_winners ORDER BY won_at DESC", raffleWinnerFields)
	if err := c.db.SelectContext(ctx, &winners, query); err != nil {
		return nil, fmt.Errorf("failed to list raffle winners: %w", err)
	}
	return winners, nil
}
