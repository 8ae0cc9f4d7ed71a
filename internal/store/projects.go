package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"photobooth-backend/internal/models"
)

const projectFields = `id, name, template_id, photo_url, canvas_data, frame_color,
	order_id, customer_name, grade, section, package_type, design_type, status,
	thumbnail_url, photo_uploaded_at, last_edited_at, completed_at, created_at,
	updated_at`

func (c *Client) ListProjects(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects", projectFields)
	var args []interface{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	var projects []models.Project
	if err := c.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	query := fmt.Sprintf("SELECT %s FROM projects WHERE id = $1", projectFields)
	if err := c.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	var created models.Project
	err := c.db.GetContext(ctx, &created, fmt.Sprintf(`
		INSERT INTO projects (name, template_id, order_id, customer_name, grade,
			section, package_type, design_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, projectFields),
		project.Name, project.TemplateID, project.OrderID, project.CustomerName,
		project.Grade, project.Section, project.PackageType, project.DesignType,
		project.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateProjectFields(ctx context.Context, id uuid.UUID, payload map[string]interface{}) (*models.Project, error) {
	clean := sanitizePayload(payload, projectColumns)
	query, args, err := buildUpdate("projects", clean, id, true)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := c.db.GetContext(ctx, &project, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	res, err := c.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordProjectPhoto stores the uploaded original and moves the project into
// editing.
func (c *Client) RecordProjectPhoto(ctx context.Context, id uuid.UUID, photoURL string, uploadedAt time.Time) (*models.Project, error) {
	var project models.Project
	err := c.db.GetContext(ctx, &project, fmt.Sprintf(`
		UPDATE projects
		SET photo_url = $1, photo_uploaded_at = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING %s`, projectFields),
		photoURL, uploadedAt, models.ProjectStatusInProgress, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to record project photo: %w", err)
	}
	return &project, nil
}

// CompleteProject persists the editor save: canvas data, frame color and the
// exported strip thumbnail.
func (c *Client) CompleteProject(ctx context.Context, id uuid.UUID, canvasData json.RawMessage, frameColor *string, thumbnailURL string, at time.Time) (*models.Project, error) {
	var project models.Project
	err := c.db.GetContext(ctx, &project, fmt.Sprintf(`
		UPDATE projects
		SET canvas_data = $1, frame_color = $2, thumbnail_url = $3,
			last_edited_at = $4, status = $5, completed_at = $4, updated_at = NOW()
		WHERE id = $6
		RETURNING %s`, projectFields),
		[]byte(canvasData), frameColor, thumbnailURL, at,
		models.ProjectStatusCompleted, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to complete project: %w", err)
	}
	return &project, nil
}
