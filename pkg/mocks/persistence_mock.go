package mocks

import (
	"context"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockPersistence is a mock implementation of persistence.Persistence interface.
// The repository accessors return the embedded mocks.
type MockPersistence struct {
	mock.Mock

	Automations *MockAutomationRepository
	Properties  *MockPropertyRepository
	Activities  *MockActivityRepository
	Logs        *MockAutomationLogRepository
}

func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		Automations: &MockAutomationRepository{},
		Properties:  &MockPropertyRepository{},
		Activities:  &MockActivityRepository{},
		Logs:        &MockAutomationLogRepository{},
	}
}

func (m *MockPersistence) AutomationRepository() persistence.AutomationRepository {
	return m.Automations
}

func (m *MockPersistence) PropertyRepository() persistence.PropertyRepository {
	return m.Properties
}

func (m *MockPersistence) ActivityRepository() persistence.ActivityRepository {
	return m.Activities
}

func (m *MockPersistence) AutomationLogRepository() persistence.AutomationLogRepository {
	return m.Logs
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// AssertExpectationsForAll checks the expectations of every embedded repository mock.
func (m *MockPersistence) AssertExpectationsForAll(t mock.TestingT) bool {
	return mock.AssertExpectationsForObjects(t, m.Automations, m.Properties, m.Activities, m.Logs)
}

// MockAutomationRepository is a mock implementation of persistence.AutomationRepository interface.
type MockAutomationRepository struct {
	mock.Mock
}

func (m *MockAutomationRepository) GetByID(ctx context.Context, id string) (*models.Automation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Automation), args.Error(1)
}

func (m *MockAutomationRepository) GetActiveByID(ctx context.Context, id string) (*models.Automation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Automation), args.Error(1)
}

func (m *MockAutomationRepository) Save(ctx context.Context, automation *models.Automation) error {
	args := m.Called(ctx, automation)

	return args.Error(0)
}

func (m *MockAutomationRepository) UpdateCounters(ctx context.Context, id string, triggerCount, successCount int) error {
	args := m.Called(ctx, id, triggerCount, successCount)

	return args.Error(0)
}

// MockPropertyRepository is a mock implementation of persistence.PropertyRepository interface.
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)

	return args.Error(0)
}

func (m *MockPropertyRepository) UpdateWorkflowState(ctx context.Context, id string, state models.WorkflowState) error {
	args := m.Called(ctx, id, state)

	return args.Error(0)
}

// MockActivityRepository is a mock implementation of persistence.ActivityRepository interface.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	args := m.Called(ctx, activity)

	return args.Error(0)
}

func (m *MockActivityRepository) ListByProperty(ctx context.Context, propertyID string) ([]*models.Activity, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Activity), args.Error(1)
}

// MockAutomationLogRepository is a mock implementation of persistence.AutomationLogRepository interface.
type MockAutomationLogRepository struct {
	mock.Mock
}

func (m *MockAutomationLogRepository) Create(ctx context.Context, entry *models.AutomationLog) error {
	args := m.Called(ctx, entry)

	return args.Error(0)
}

func (m *MockAutomationLogRepository) ListByAutomation(ctx context.Context, automationID string, limit int) ([]*models.AutomationLog, error) {
	args := m.Called(ctx, automationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.AutomationLog), args.Error(1)
}
