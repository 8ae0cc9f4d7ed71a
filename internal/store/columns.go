package store

import (
	"fmt"
	"sort"
	"strings"
)

// Per-table column allow-lists. Patch payloads are filtered through these
// before any write; unlisted keys are silently dropped.

var orderColumns = columnSet(
	"customer_name", "grade", "section", "package_type", "design_type",
	"standard_design_id", "included_raffles", "additional_raffles",
	"total_raffles", "raffle_cost", "package_base_cost", "total_amount",
	"payment_method", "gcash_reference", "order_status", "photo_status",
	"order_date", "photo_uploaded_date", "project_completed_date",
	"packed_date", "delivery_date", "delivery_recipient", "delivery_notes",
)

var projectColumns = columnSet(
	"name", "template_id", "photo_url", "canvas_data", "frame_color",
	"order_id", "customer_name", "grade", "section", "package_type",
	"design_type", "status", "thumbnail_url", "photo_uploaded_at",
	"last_edited_at", "completed_at",
)

var printTemplateColumns = columnSet(
	"template_number", "status", "slots_used", "total_slots",
	"final_image_url", "completed_at", "downloaded_at", "printed_at",
)

var raffleEntryColumns = columnSet(
	"order_id", "customer_name", "grade", "section", "raffle_number",
	"is_winner", "won_at",
)

func columnSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func sanitizePayload(payload map[string]interface{}, allowed map[string]struct{}) map[string]interface{} {
	out := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		if _, ok := allowed[key]; ok {
			out[key] = value
		}
	}
	return out
}

// buildUpdate renders `UPDATE <table> SET ... WHERE id = $n RETURNING *` for
// an already-sanitized payload. Keys are sorted so the statement is stable.
// touchUpdatedAt must be false for tables without an updated_at column.
func buildUpdate(table string, payload map[string]interface{}, id interface{}, touchUpdatedAt bool) (string, []interface{}, error) {
	if len(payload) == 0 {
		return "", nil, fmt.Errorf("no fields to update")
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	setters := make([]string, 0, len(keys)+1)
	values := make([]interface{}, 0, len(keys)+1)
	for i, key := range keys {
		setters = append(setters, fmt.Sprintf("%q = $%d", key, i+1))
		values = append(values, payload[key])
	}
	if touchUpdatedAt {
		setters = append(setters, "updated_at = NOW()")
	}
	values = append(values, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		table, strings.Join(setters, ", "), len(values))
	return query, values, nil
}
