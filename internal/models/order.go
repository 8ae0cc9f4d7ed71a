package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID                   uuid.UUID   `db:"id" json:"id"`
	CustomerName         string      `db:"customer_name" json:"customer_name"`
	Grade                string      `db:"grade" json:"grade"`
	Section              string      `db:"section" json:"section"`
	PackageType          int         `db:"package_type" json:"package_type"`
	DesignType           string      `db:"design_type" json:"design_type"`
	StandardDesignID     *uuid.UUID  `db:"standard_design_id" json:"standard_design_id,omitempty"`
	IncludedRaffles      int         `db:"included_raffles" json:"included_raffles"`
	AdditionalRaffles    int         `db:"additional_raffles" json:"additional_raffles"`
	TotalRaffles         int         `db:"total_raffles" json:"total_raffles"`
	RaffleCost           float64     `db:"raffle_cost" json:"raffle_cost"`
	PackageBaseCost      float64     `db:"package_base_cost" json:"package_base_cost"`
	TotalAmount          float64     `db:"total_amount" json:"total_amount"`
	PaymentMethod        string      `db:"payment_method" json:"payment_method"`
	GcashReference       *string     `db:"gcash_reference" json:"gcash_reference,omitempty"`
	OrderStatus          OrderStatus `db:"order_status" json:"order_status"`
	PhotoStatus          PhotoStatus `db:"photo_status" json:"photo_status"`
	OrderDate            time.Time   `db:"order_date" json:"order_date"`
	PhotoUploadedDate    *time.Time  `db:"photo_uploaded_date" json:"photo_uploaded_date,omitempty"`
	ProjectCompletedDate *time.Time  `db:"project_completed_date" json:"project_completed_date,omitempty"`
	PackedDate           *time.Time  `db:"packed_date" json:"packed_date,omitempty"`
	DeliveryDate         *time.Time  `db:"delivery_date" json:"delivery_date,omitempty"`
	DeliveryRecipient    *string     `db:"delivery_recipient" json:"delivery_recipient,omitempty"`
	DeliveryNotes        *string     `db:"delivery_notes" json:"delivery_notes,omitempty"`
	CreatedAt            time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time   `db:"updated_at" json:"updated_at"`
}
