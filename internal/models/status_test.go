package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateStatusTransitions(t *testing.T) {
	tests := []struct {
		from    TemplateStatus
		to      TemplateStatus
		allowed bool
	}{
		{TemplateStatusFilling, TemplateStatusComplete, true},
		{TemplateStatusFilling, TemplateStatusDownloaded, false},
		{TemplateStatusFilling, TemplateStatusPrinted, false},
		{TemplateStatusComplete, TemplateStatusFilling, true},
		{TemplateStatusComplete, TemplateStatusDownloaded, true},
		{TemplateStatusComplete, TemplateStatusPrinted, false},
		{TemplateStatusDownloaded, TemplateStatusPrinted, true},
		{TemplateStatusDownloaded, TemplateStatusComplete, false},
		{TemplateStatusPrinted, TemplateStatusDownloaded, false},
		{TemplateStatusPrinted, TemplateStatusFilling, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	chain := []OrderStatus{
		OrderStatusPending,
		OrderStatusPhotoUploaded,
		OrderStatusCompleted,
		OrderStatusToPrint,
		OrderStatusPacked,
		OrderStatusDelivered,
	}

	// Each status reaches exactly its successor, nothing else.
	for i, from := range chain {
		for j, to := range chain {
			want := j == i+1
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, TemplateStatusFilling.Valid())
	assert.True(t, OrderStatusDelivered.Valid())
	assert.False(t, TemplateStatus("shredded").Valid())
	assert.False(t, OrderStatus("lost").Valid())
}
