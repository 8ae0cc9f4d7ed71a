package models

// Status values are stored as plain text columns but handled as closed types
// here so transition rules live in one place.

type TemplateStatus string

const (
	TemplateStatusFilling    TemplateStatus = "filling"
	TemplateStatusComplete   TemplateStatus = "complete"
	TemplateStatusDownloaded TemplateStatus = "downloaded"
	TemplateStatusPrinted    TemplateStatus = "printed"
)

// complete -> filling happens only when the allocator reclaims slots from a
// template that had been counted full; it is never an operator action.
var templateTransitions = map[TemplateStatus][]TemplateStatus{
	TemplateStatusFilling:    {TemplateStatusComplete},
	TemplateStatusComplete:   {TemplateStatusFilling, TemplateStatusDownloaded},
	TemplateStatusDownloaded: {TemplateStatusPrinted},
	TemplateStatusPrinted:    {},
}

func (s TemplateStatus) Valid() bool {
	_, ok := templateTransitions[s]
	return ok
}

func (s TemplateStatus) CanTransitionTo(next TemplateStatus) bool {
	for _, allowed := range templateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusPhotoUploaded OrderStatus = "photo_uploaded"
	OrderStatusCompleted     OrderStatus = "completed"
	OrderStatusToPrint       OrderStatus = "to_print"
	OrderStatusPacked        OrderStatus = "packed"
	OrderStatusDelivered     OrderStatus = "delivered"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:       {OrderStatusPhotoUploaded},
	OrderStatusPhotoUploaded: {OrderStatusCompleted},
	OrderStatusCompleted:     {OrderStatusToPrint},
	OrderStatusToPrint:       {OrderStatusPacked},
	OrderStatusPacked:        {OrderStatusDelivered},
	OrderStatusDelivered:     {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ProjectStatus string

const (
	ProjectStatusAwaitingPhoto ProjectStatus = "awaiting_photo"
	ProjectStatusInProgress    ProjectStatus = "in_progress"
	ProjectStatusCompleted     ProjectStatus = "completed"
)

type PhotoStatus string

const (
	PhotoStatusAwaiting  PhotoStatus = "awaiting"
	PhotoStatusUploaded  PhotoStatus = "uploaded"
	PhotoStatusCompleted PhotoStatus = "completed"
)
