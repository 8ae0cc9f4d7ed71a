package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePayloadDropsUnlistedKeys(t *testing.T) {
	payload := map[string]interface{}{
		"customer_name": "Maria Santos",
		"order_status":  "packed",
		"id":            "overwrite-attempt",
		"created_at":    "2026-01-01",
		"drop_table":    "orders",
	}

	clean := sanitizePayload(payload, orderColumns)

	assert.Equal(t, map[string]interface{}{
		"customer_name": "Maria Santos",
		"order_status":  "packed",
	}, clean)
}

func TestBuildUpdate(t *testing.T) {
	id := uuid.New()
	query, args, err := buildUpdate("orders", map[string]interface{}{
		"order_status":  "packed",
		"customer_name": "Maria Santos",
	}, id, true)
	require.NoError(t, err)

	// Keys are sorted, so placeholders are deterministic.
	assert.Equal(t,
		`UPDATE orders SET "customer_name" = $1, "order_status" = $2, updated_at = NOW() WHERE id = $3 RETURNING *`,
		query)
	assert.Equal(t, []interface{}{"Maria Santos", "packed", id}, args)
}

func TestBuildUpdateWithoutUpdatedAt(t *testing.T) {
	id := uuid.New()
	query, args, err := buildUpdate("print_templates", map[string]interface{}{
		"status": "downloaded",
	}, id, false)
	require.NoError(t, err)

	assert.Equal(t,
		`UPDATE print_templates SET "status" = $1 WHERE id = $2 RETURNING *`,
		query)
	assert.Len(t, args, 2)
}

func TestBuildUpdateRejectsEmptyPayload(t *testing.T) {
	_, _, err := buildUpdate("orders", map[string]interface{}{}, uuid.New(), true)
	require.Error(t, err)
}
