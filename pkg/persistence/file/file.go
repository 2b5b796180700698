// Package file provides file-based persistence implementation for automations and their records.
package file

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the file system.
// Each collection is a directory of JSON documents named by record ID.
type Persistence struct {
	root           string
	mu             *sync.RWMutex
	automationRepo *AutomationRepository
	propertyRepo   *PropertyRepository
	activityRepo   *ActivityRepository
	logRepo        *AutomationLogRepository
}

// NewPersistence creates a new instance of Persistence with the specified root directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)
	mu := &sync.RWMutex{}

	return &Persistence{
		root:           cleanRoot,
		mu:             mu,
		automationRepo: &AutomationRepository{records: newRecords[models.Automation](cleanRoot, "automations", mu)},
		propertyRepo:   &PropertyRepository{records: newRecords[models.Property](cleanRoot, "properties", mu)},
		activityRepo:   &ActivityRepository{records: newRecords[models.Activity](cleanRoot, "activities", mu)},
		logRepo:        &AutomationLogRepository{records: newRecords[models.AutomationLog](cleanRoot, "automation_logs", mu)},
	}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the file persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) AutomationRepository() persistence.AutomationRepository {
	return fp.automationRepo
}

func (fp *Persistence) PropertyRepository() persistence.PropertyRepository {
	return fp.propertyRepo
}

func (fp *Persistence) ActivityRepository() persistence.ActivityRepository {
	return fp.activityRepo
}

func (fp *Persistence) AutomationLogRepository() persistence.AutomationLogRepository {
	return fp.logRepo
}
