package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	TemplateID      *uuid.UUID      `db:"template_id" json:"template_id,omitempty"`
	PhotoURL        *string         `db:"photo_url" json:"photo_url,omitempty"`
	CanvasData      json.RawMessage `db:"canvas_data" json:"canvas_data,omitempty"`
	FrameColor      *string         `db:"frame_color" json:"frame_color,omitempty"`
	OrderID         *uuid.UUID      `db:"order_id" json:"order_id,omitempty"`
	CustomerName    *string         `db:"customer_name" json:"customer_name,omitempty"`
	Grade           *string         `db:"grade" json:"grade,omitempty"`
	Section         *string         `db:"section" json:"section,omitempty"`
	PackageType     *int            `db:"package_type" json:"package_type,omitempty"`
	DesignType      *string         `db:"design_type" json:"design_type,omitempty"`
	Status          ProjectStatus   `db:"status" json:"status"`
	ThumbnailURL    *string         `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	PhotoUploadedAt *time.Time      `db:"photo_uploaded_at" json:"photo_uploaded_at,omitempty"`
	LastEditedAt    *time.Time      `db:"last_edited_at" json:"last_edited_at,omitempty"`
	CompletedAt     *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
