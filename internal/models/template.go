package models

import (
	"time"

	"github.com/google/uuid"
)

// TemplateCapacity is the number of photo-strip slots on one A4 sheet.
const TemplateCapacity = 6

// Template is an entry in the standard-design catalog that customers pick
// from at order time. Not to be confused with PrintTemplate.
type Template struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	PreviewURL *string   `db:"preview_url" json:"preview_url,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// PrintTemplate is one physical A4 sheet being packed with finished strips.
type PrintTemplate struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	TemplateNumber string         `db:"template_number" json:"template_number"`
	Status         TemplateStatus `db:"status" json:"status"`
	SlotsUsed      int            `db:"slots_used" json:"slots_used"`
	TotalSlots     int            `db:"total_slots" json:"total_slots"`
	FinalImageURL  *string        `db:"final_image_url" json:"final_image_url,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	CompletedAt    *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	DownloadedAt   *time.Time     `db:"downloaded_at" json:"downloaded_at,omitempty"`
	PrintedAt      *time.Time     `db:"printed_at" json:"printed_at,omitempty"`
}

// TemplateSlot is one position (1..TotalSlots) on a print template. Unique
// per (template_id, position).
type TemplateSlot struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TemplateID  uuid.UUID  `db:"template_id" json:"template_id"`
	Position    int        `db:"position" json:"position"`
	OrderID     *uuid.UUID `db:"order_id" json:"order_id,omitempty"`
	ProjectID   *uuid.UUID `db:"project_id" json:"project_id,omitempty"`
	PhotoURL    *string    `db:"photo_url" json:"photo_url,omitempty"`
	StudentName *string    `db:"student_name" json:"student_name,omitempty"`
	Grade       *string    `db:"grade" json:"grade,omitempty"`
	Section     *string    `db:"section" json:"section,omitempty"`
	PackageType *int       `db:"package_type" json:"package_type,omitempty"`
	InsertedAt  time.Time  `db:"inserted_at" json:"inserted_at"`
}
