package file

import (
	"context"
	"sort"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

// AutomationLogRepository handles automation log file operations.
type AutomationLogRepository struct {
	records *records[models.AutomationLog]
}

func (r *AutomationLogRepository) Create(_ context.Context, entry *models.AutomationLog) error {
	r.records.mu.Lock()
	defer r.records.mu.Unlock()

	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return persistence.NewRecordError("Create", "automation_logs", "", err)
		}

		entry.ID = id.String()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	err := r.records.write(entry.ID, entry)
	if err != nil {
		return persistence.NewRecordError("Create", "automation_logs", entry.ID, err)
	}

	return nil
}

func (r *AutomationLogRepository) ListByAutomation(_ context.Context, automationID string, limit int) ([]*models.AutomationLog, error) {
	r.records.mu.RLock()
	defer r.records.mu.RUnlock()

	all, err := r.records.all()
	if err != nil {
		return nil, persistence.NewRecordError("ListByAutomation", "automation_logs", automationID, err)
	}

	entries := make([]*models.AutomationLog, 0)

	for _, entry := range all {
		if entry.AutomationID == automationID {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}

		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
