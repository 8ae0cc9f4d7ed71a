package models

import (
	"time"

	"github.com/google/uuid"
)

// RaffleEntry is one numbered ticket belonging to an order. An entry can win
// at most once; won_at is set the moment it is drawn.
type RaffleEntry struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	OrderID      uuid.UUID  `db:"order_id" json:"order_id"`
	CustomerName string     `db:"customer_name" json:"customer_name"`
	Grade        string     `db:"grade" json:"grade"`
	Section      string     `db:"section" json:"section"`
	RaffleNumber int        `db:"raffle_number" json:"raffle_number"`
	IsWinner     bool       `db:"is_winner" json:"is_winner"`
	WonAt        *time.Time `db:"won_at" json:"won_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// RaffleWinner is the record written when an entry is drawn.
type RaffleWinner struct {
	ID           uuid.UUID `db:"id" json:"id"`
	EntryID      uuid.UUID `db:"entry_id" json:"entry_id"`
	OrderID      uuid.UUID `db:"order_id" json:"order_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Grade        string    `db:"grade" json:"grade"`
	Section      string    `db:"section" json:"section"`
	WonAt        time.Time `db:"won_at" json:"won_at"`
	PrizeDetails *string   `db:"prize_details" json:"prize_details,omitempty"`
}
