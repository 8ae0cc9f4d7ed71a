package store

import (
	"context"
	"fmt"

	"photobooth-backend/internal/models"
)

func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	err := c.db.SelectContext(ctx, &templates,
		"SELECT id, name, preview_url, created_at FROM templates ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (c *Client) CreateTemplate(ctx context.Context, name string, previewURL *string) (*models.Template, error) {
	var template models.Template
	err := c.db.GetContext(ctx, &template, `
		INSERT INTO templates (name, preview_url)
		VALUES ($1, $2)
		RETURNING id, name, preview_url, created_at`,
		name, previewURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return &template, nil
}
