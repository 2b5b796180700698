package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

// ActivityRepository handles activity-related database operations.
type ActivityRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *sql.DB, logger *slog.Logger) *ActivityRepository {
	return &ActivityRepository{db: db, logger: logger}
}

// Create inserts a new activity, assigning its ID and creation time when unset.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate activity ID: %w", err)
		}

		activity.ID = id.String()
	}

	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activities (id, company_id, property_id, automation_id, activity_type,
title, description, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		activity.ID,
		activity.CompanyID,
		activity.PropertyID,
		activity.AutomationID,
		activity.Type,
		activity.Title,
		activity.Description,
		activity.DueDate,
		string(activity.Status),
		activity.CreatedAt,
	)
	if err != nil {
		return persistence.NewRecordError("Create", "activities", activity.ID, err)
	}

	return nil
}

// ListByProperty returns the activities of a property ordered by due date.
func (r *ActivityRepository) ListByProperty(ctx context.Context, propertyID string) ([]*models.Activity, error) {
	query := `
		SELECT
			id
		  , company_id
		  , property_id
		  , automation_id
		  , activity_type
		  , title
		  , description
		  , due_date
		  , status
		  , created_at
		FROM activities
		WHERE property_id = $1
		ORDER BY due_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	activities := make([]*models.Activity, 0)

	for rows.Next() {
		var activity models.Activity

		err := rows.Scan(
			&activity.ID,
			&activity.CompanyID,
			&activity.PropertyID,
			&activity.AutomationID,
			&activity.Type,
			&activity.Title,
			&activity.Description,
			&activity.DueDate,
			&activity.Status,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		activities = append(activities, &activity)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}
