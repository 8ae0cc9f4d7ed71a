package models

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateOrderResponse returns everything the cashier flow creates in one
// call: the order, its pending editing project and the raffle tickets.
type CreateOrderResponse struct {
	Order         Order         `json:"order"`
	Project       Project       `json:"project"`
	RaffleEntries []RaffleEntry `json:"raffle_entries"`
}

// CompleteProjectResponse reports the editor save. Template allocation
// failure is partial success: the project is saved either way.
type CompleteProjectResponse struct {
	Project          Project `json:"project"`
	TemplateAssigned bool    `json:"template_assigned"`
	TemplateError    string  `json:"template_error,omitempty"`
}

type UploadResponse struct {
	StorageKey string `json:"storage_key"`
	PublicURL  string `json:"public_url"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type BulkUpdateResponse struct {
	Updated int `json:"updated"`
}

type DeleteSlotsResponse struct {
	Deleted int         `json:"deleted"`
	IDs     []uuid.UUID `json:"ids"`
}

// PrintedSummary aggregates, per order, how many of its slots sit in printed
// templates. The count is capped at the order's package type.
type PrintedSummary struct {
	OrderID         uuid.UUID  `json:"order_id"`
	PrintedCount    int        `json:"printed_count"`
	TemplateNumbers []string   `json:"template_numbers"`
	PrintedAt       *time.Time `json:"printed_at,omitempty"`
}
