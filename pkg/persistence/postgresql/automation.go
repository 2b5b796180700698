package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

const automationColumns = `
			id
		  , company_id
		  , name
		  , description
		  , is_active
		  , flow_data
		  , trigger_count
		  , success_count
		  , created_at
		  , updated_at`

// AutomationRepository handles automation-related database operations.
type AutomationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAutomationRepository creates a new automation repository.
func NewAutomationRepository(db *sql.DB, logger *slog.Logger) *AutomationRepository {
	return &AutomationRepository{db: db, logger: logger}
}

// GetByID returns the automation regardless of its active flag.
func (r *AutomationRepository) GetByID(ctx context.Context, id string) (*models.Automation, error) {
	query := `SELECT ` + automationColumns + ` FROM automations WHERE id = $1`

	return r.getOne(ctx, "GetByID", id, query)
}

// GetActiveByID returns the automation only when is_active is set.
func (r *AutomationRepository) GetActiveByID(ctx context.Context, id string) (*models.Automation, error) {
	query := `SELECT ` + automationColumns + ` FROM automations WHERE id = $1 AND is_active = true`

	return r.getOne(ctx, "GetActiveByID", id, query)
}

func (r *AutomationRepository) getOne(ctx context.Context, op, id, query string) (*models.Automation, error) {
	automation, err := scanAutomation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewRecordError(op, "automations", id, persistence.ErrAutomationNotFound)
		}

		return nil, persistence.NewRecordError(op, "automations", id, err)
	}

	return automation, nil
}

// Save inserts or replaces an automation.
func (r *AutomationRepository) Save(ctx context.Context, automation *models.Automation) error {
	now := time.Now().UTC()

	if automation.CreatedAt.IsZero() {
		automation.CreatedAt = now
	}

	automation.UpdatedAt = now

	if automation.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate automation ID: %w", err)
		}

		automation.ID = id.String()
	}

	var flowJSON []byte

	if automation.FlowData != nil {
		var err error

		flowJSON, err = json.Marshal(automation.FlowData)
		if err != nil {
			return fmt.Errorf("failed to marshal flow data: %w", err)
		}
	}

	query := `
		INSERT INTO automations (id, company_id, name, description, is_active, flow_data,
trigger_count, success_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			is_active = EXCLUDED.is_active,
			flow_data = EXCLUDED.flow_data,
			trigger_count = EXCLUDED.trigger_count,
			success_count = EXCLUDED.success_count,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		automation.ID,
		automation.CompanyID,
		automation.Name,
		automation.Description,
		automation.IsActive,
		flowJSON,
		automation.TriggerCount,
		automation.SuccessCount,
		automation.CreatedAt,
		automation.UpdatedAt,
	)
	if err != nil {
		return persistence.NewRecordError("Save", "automations", automation.ID, err)
	}

	return nil
}

// UpdateCounters overwrites trigger_count and success_count with the given values.
func (r *AutomationRepository) UpdateCounters(ctx context.Context, id string, triggerCount, successCount int) error {
	query := `
		UPDATE automations
		SET trigger_count = $2, success_count = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, triggerCount, successCount, time.Now().UTC())
	if err != nil {
		return persistence.NewRecordError("UpdateCounters", "automations", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewRecordError("UpdateCounters", "automations", id, err)
	}

	if affected == 0 {
		return persistence.NewRecordError("UpdateCounters", "automations", id, persistence.ErrAutomationNotFound)
	}

	return nil
}

func scanAutomation(row scanner) (*models.Automation, error) {
	var (
		automation models.Automation
		flowJSON   []byte
	)

	err := row.Scan(
		&automation.ID,
		&automation.CompanyID,
		&automation.Name,
		&automation.Description,
		&automation.IsActive,
		&flowJSON,
		&automation.TriggerCount,
		&automation.SuccessCount,
		&automation.CreatedAt,
		&automation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(flowJSON) > 0 {
		automation.FlowData = &models.FlowData{}

		err = json.Unmarshal(flowJSON, automation.FlowData)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal flow data: %w", err)
		}
	}

	return &automation, nil
}
