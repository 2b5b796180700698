package file

import (
	"context"
	"sort"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

// ActivityRepository handles activity file operations.
type ActivityRepository struct {
	records *records[models.Activity]
}

func (r *ActivityRepository) Create(_ context.Context, activity *models.Activity) error {
	r.records.mu.Lock()
	defer r.records.mu.Unlock()

	if activity.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return persistence.NewRecordError("Create", "activities", "", err)
		}

		activity.ID = id.String()
	}

	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	err := r.records.write(activity.ID, activity)
	if err != nil {
		return persistence.NewRecordError("Create", "activities", activity.ID, err)
	}

	return nil
}

// ListByProperty returns the activities of a property ordered by due date.
func (r *ActivityRepository) ListByProperty(_ context.Context, propertyID string) ([]*models.Activity, error) {
	r.records.mu.RLock()
	defer r.records.mu.RUnlock()

	all, err := r.records.all()
	if err != nil {
		return nil, persistence.NewRecordError("ListByProperty", "activities", propertyID, err)
	}

	activities := make([]*models.Activity, 0)

	for _, activity := range all {
		if activity.PropertyID == propertyID {
			activities = append(activities, activity)
		}
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].DueDate.Before(activities[j].DueDate)
	})

	return activities, nil
}
