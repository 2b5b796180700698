package file

import (
	"context"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

// PropertyRepository handles property file operations.
type PropertyRepository struct {
	records *records[models.Property]
}

func (r *PropertyRepository) GetByID(_ context.Context, id string) (*models.Property, error) {
	r.records.mu.RLock()
	defer r.records.mu.RUnlock()

	property, err := r.records.read(id)
	if err != nil {
		return nil, persistence.NewRecordError("GetByID", "properties", id, err)
	}

	if property == nil {
		return nil, persistence.NewRecordError("GetByID", "properties", id, persistence.ErrPropertyNotFound)
	}

	return property, nil
}

func (r *PropertyRepository) Save(_ context.Context, property *models.Property) error {
	r.records.mu.Lock()
	defer r.records.mu.Unlock()

	if property.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return persistence.NewRecordError("Save", "properties", "", err)
		}

		property.ID = id.String()
	}

	now := time.Now().UTC()
	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}

	property.UpdatedAt = now

	err := r.records.write(property.ID, property)
	if err != nil {
		return persistence.NewRecordError("Save", "properties", property.ID, err)
	}

	return nil
}

func (r *PropertyRepository) UpdateWorkflowState(_ context.Context, id string, state models.WorkflowState) error {
	r.records.mu.Lock()
	defer r.records.mu.Unlock()

	property, err := r.records.read(id)
	if err != nil {
		return persistence.NewRecordError("UpdateWorkflowState", "properties", id, err)
	}

	if property == nil {
		return persistence.NewRecordError("UpdateWorkflowState", "properties", id, persistence.ErrPropertyNotFound)
	}

	property.WorkflowState = state
	property.UpdatedAt = time.Now().UTC()

	err = r.records.write(id, property)
	if err != nil {
		return persistence.NewRecordError("UpdateWorkflowState", "properties", id, err)
	}

	return nil
}
