package handlers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// parseUUIDList parses a comma-separated list of UUIDs from a query value.
// An empty value yields nil, not an error.
func parseUUIDList(value string) ([]uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
