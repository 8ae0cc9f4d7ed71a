package models

import "encoding/json"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateOrderRequest struct {
	CustomerName      string  `json:"customer_name" binding:"required"`
	Grade             string  `json:"grade" binding:"required"`
	Section           string  `json:"section" binding:"required"`
	PackageType       int     `json:"package_type" binding:"required"`
	DesignType        string  `json:"design_type"`
	StandardDesignID  *string `json:"standard_design_id,omitempty"`
	AdditionalRaffles int     `json:"additional_raffles"`
	PaymentMethod     string  `json:"payment_method"`
	GcashReference    *string `json:"gcash_reference,omitempty"`
}

type CreateProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	TemplateID   *string `json:"template_id,omitempty"`
	OrderID      *string `json:"order_id,omitempty"`
	CustomerName *string `json:"customer_name,omitempty"`
	Grade        *string `json:"grade,omitempty"`
	Section      *string `json:"section,omitempty"`
	PackageType  *int    `json:"package_type,omitempty"`
	DesignType   *string `json:"design_type,omitempty"`
}

// RecordPhotoRequest attaches an uploaded original photo to a project.
type RecordPhotoRequest struct {
	PhotoURL string `json:"photo_url" binding:"required"`
}

// CompleteProjectRequest carries the editor save: the serialized canvas and
// the exported strip image URL.
type CompleteProjectRequest struct {
	CanvasData   json.RawMessage `json:"canvas_data,omitempty"`
	FrameColor   *string         `json:"frame_color,omitempty"`
	ThumbnailURL string          `json:"thumbnail_url" binding:"required"`
}

type BulkUpdateOrdersRequest struct {
	IDs   []string               `json:"ids" binding:"required"`
	Patch map[string]interface{} `json:"patch" binding:"required"`
}

type DeliverOrderRequest struct {
	Recipient *string `json:"delivery_recipient,omitempty"`
	Notes     *string `json:"delivery_notes,omitempty"`
}

type CreateTemplateRequest struct {
	Name       string  `json:"name" binding:"required"`
	PreviewURL *string `json:"preview_url,omitempty"`
}

type DownloadTemplateRequest struct {
	FinalImageURL *string `json:"final_image_url,omitempty"`
}

// SlotPayload is one slot in a bulk upsert. IDs arrive as strings and are
// validated before any write.
type SlotPayload struct {
	TemplateID  string  `json:"template_id"`
	Position    int     `json:"position"`
	OrderID     *string `json:"order_id,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	StudentName *string `json:"student_name,omitempty"`
	Grade       *string `json:"grade,omitempty"`
	Section     *string `json:"section,omitempty"`
	PackageType *int    `json:"package_type,omitempty"`
}

type BulkSlotsRequest struct {
	Slots []SlotPayload `json:"slots" binding:"required"`
}

type RaffleEntryPayload struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	Grade        string `json:"grade"`
	Section      string `json:"section"`
	RaffleNumber int    `json:"raffle_number"`
}

type BulkRaffleEntriesRequest struct {
	Entries []RaffleEntryPayload `json:"entries" binding:"required"`
}

type DrawRequest struct {
	PrizeDetails *string `json:"prize_details,omitempty"`
}
