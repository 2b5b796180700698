package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

// AutomationLogRepository handles the append-only automation_logs table.
type AutomationLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAutomationLogRepository creates a new automation log repository.
func NewAutomationLogRepository(db *sql.DB, logger *slog.Logger) *AutomationLogRepository {
	return &AutomationLogRepository{db: db, logger: logger}
}

func (r *AutomationLogRepository) Create(ctx context.Context, entry *models.AutomationLog) error {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate automation log ID: %w", err)
		}

		entry.ID = id.String()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	actions := entry.ActionsExecuted
	if actions == nil {
		actions = []models.ActionOutcome{}
	}

	actionsJSON, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("failed to marshal executed actions: %w", err)
	}

	query := `
		INSERT INTO automation_logs (id, automation_id, company_id, trigger_type, property_id,
status, actions_executed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		entry.AutomationID,
		entry.CompanyID,
		entry.TriggerType,
		entry.PropertyID,
		entry.Status,
		actionsJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return persistence.NewRecordError("Create", "automation_logs", entry.ID, err)
	}

	return nil
}

// ListByAutomation returns up to limit entries of an automation, newest first.
func (r *AutomationLogRepository) ListByAutomation(
	ctx context.Context,
	automationID string,
	limit int,
) ([]*models.AutomationLog, error) {
	query := `
		SELECT
			id
		  , automation_id
		  , company_id
		  , trigger_type
		  , property_id
		  , status
		  , actions_executed
		  , created_at
		FROM automation_logs
		WHERE automation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, automationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query automation logs: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	entries := make([]*models.AutomationLog, 0)

	for rows.Next() {
		var (
			entry       models.AutomationLog
			propertyID  sql.NullString
			actionsJSON []byte
		)

		err := rows.Scan(
			&entry.ID,
			&entry.AutomationID,
			&entry.CompanyID,
			&entry.TriggerType,
			&propertyID,
			&entry.Status,
			&actionsJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan automation log: %w", err)
		}

		if propertyID.Valid {
			entry.PropertyID = &propertyID.String
		}

		err = json.Unmarshal(actionsJSON, &entry.ActionsExecuted)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal executed actions: %w", err)
		}

		entries = append(entries, &entry)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating automation logs: %w", err)
	}

	return entries, nil
}
