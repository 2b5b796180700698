package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/dealflow/dealflow/pkg/persistence/postgresql"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var postgresContainer *postgres.PostgresContainer

func dropDb(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"automation_logs", "activities", "properties", "automations", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	err = db.Close()
	require.NoError(t, err)
}

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context, string) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("dealflow_test"),
			postgres.WithUsername("dealflow"),
			postgres.WithPassword("dealflow"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDb(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDb(ctx, t, databaseURL)

		err = store.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return store, ctx, databaseURL
}

func TestNewPersistence_Migrations(t *testing.T) {
	_, ctx, databaseURL := setupTestDB(t)

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	var version int

	err = db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	for _, table := range []string{"automations", "properties", "activities", "automation_logs"} {
		var exists bool

		err = db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}

func TestNewPersistence_MigrationsAreIdempotent(t *testing.T) {
	_, ctx, databaseURL := setupTestDB(t)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	second, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)
	require.NoError(t, second.Close(ctx))
}

func TestPersistence_HealthCheck(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	assert.NoError(t, store.HealthCheck(ctx))
}

func TestAutomationRepository(t *testing.T) {
	store, ctx, _ := setupTestDB(t)
	repo := store.AutomationRepository()

	automation := &models.Automation{
		ID:        "auto-1",
		CompanyID: "company-1",
		Name:      "Price drop follow-up",
		IsActive:  true,
		FlowData: &models.FlowData{
			Nodes: []*models.Node{
				{ID: "t1", Type: models.NodeTypeTrigger, Data: models.NodeData{Label: "property_added"}},
				{ID: "a1", Type: models.NodeTypeAction, Data: models.NodeData{
					Label:  "update_workflow",
					Config: map[string]any{"new_state": "contacted"},
				}},
			},
			Edges: []*models.Edge{{ID: "e1", Source: "t1", Target: "a1"}},
		},
		TriggerCount: 5,
		SuccessCount: 4,
	}

	require.NoError(t, repo.Save(ctx, automation))

	loaded, err := repo.GetActiveByID(ctx, "auto-1")
	require.NoError(t, err)
	assert.Equal(t, "Price drop follow-up", loaded.Name)
	assert.Equal(t, 5, loaded.TriggerCount)
	require.Len(t, loaded.ActionNodes(), 1)
	assert.Equal(t, "contacted", loaded.ActionNodes()[0].ConfigOrEmpty()["new_state"])
	require.Len(t, loaded.FlowData.Edges, 1)

	require.NoError(t, repo.UpdateCounters(ctx, "auto-1", 6, 5))

	loaded, err = repo.GetByID(ctx, "auto-1")
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.TriggerCount)
	assert.Equal(t, 5, loaded.SuccessCount)

	loaded.IsActive = false
	require.NoError(t, repo.Save(ctx, loaded))

	_, err = repo.GetActiveByID(ctx, "auto-1")
	assert.True(t, persistence.IsAutomationNotFound(err))

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, persistence.IsAutomationNotFound(err))

	err = repo.UpdateCounters(ctx, "missing", 1, 1)
	assert.True(t, persistence.IsAutomationNotFound(err))
}

func TestAutomationRepository_NullFlowData(t *testing.T) {
	store, ctx, _ := setupTestDB(t)
	repo := store.AutomationRepository()

	require.NoError(t, repo.Save(ctx, &models.Automation{ID: "empty", Name: "Empty", IsActive: true}))

	loaded, err := repo.GetActiveByID(ctx, "empty")
	require.NoError(t, err)
	assert.Nil(t, loaded.FlowData)
	assert.Empty(t, loaded.ActionNodes())
}

func TestPropertyRepository(t *testing.T) {
	store, ctx, _ := setupTestDB(t)
	repo := store.PropertyRepository()

	price, beds := 235000.0, 3.0
	living := 1650

	require.NoError(t, repo.Save(ctx, &models.Property{
		ID:               "prop-1",
		Address:          "12 Elm St",
		Price:            &price,
		Bedrooms:         &beds,
		LivingAreaSqft:   &living,
		SellerAgentName:  "Dana Reyes",
		SellerAgentPhone: "+15551234567",
		WorkflowState:    "new",
	}))

	require.NoError(t, repo.UpdateWorkflowState(ctx, "prop-1", "offer_sent"))

	loaded, err := repo.GetByID(ctx, "prop-1")
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowState("offer_sent"), loaded.WorkflowState)
	require.NotNil(t, loaded.Price)
	assert.InDelta(t, 235000.0, *loaded.Price, 0.001)
	assert.Nil(t, loaded.Bathrooms)
	assert.Nil(t, loaded.SquareFeet)
	assert.Equal(t, &living, loaded.Sqft())

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, persistence.IsPropertyNotFound(err))

	err = repo.UpdateWorkflowState(ctx, "missing", "offer_sent")
	assert.True(t, persistence.IsPropertyNotFound(err))
}

func TestActivityRepository(t *testing.T) {
	store, ctx, _ := setupTestDB(t)
	repo := store.ActivityRepository()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Create(ctx, &models.Activity{
		PropertyID: "prop-1", Type: "follow_up", Title: "Second call",
		DueDate: now.Add(72 * time.Hour), Status: models.ActivityStatusPending,
	}))
	require.NoError(t, repo.Create(ctx, &models.Activity{
		PropertyID: "prop-1", AutomationID: "auto-1", Type: "call", Title: "First call",
		DueDate: now.Add(24 * time.Hour), Status: models.ActivityStatusPending,
	}))

	activities, err := repo.ListByProperty(ctx, "prop-1")
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "First call", activities[0].Title)
	assert.Equal(t, "auto-1", activities[0].AutomationID)
	assert.Equal(t, models.ActivityStatusPending, activities[0].Status)
	assert.True(t, activities[0].DueDate.Equal(now.Add(24*time.Hour)))
}

func TestAutomationLogRepository(t *testing.T) {
	store, ctx, _ := setupTestDB(t)
	repo := store.AutomationLogRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	propertyID := "prop-1"

	for i := range 3 {
		require.NoError(t, repo.Create(ctx, &models.AutomationLog{
			AutomationID: "auto-1",
			TriggerType:  "manual",
			PropertyID:   &propertyID,
			Status:       models.AutomationLogStatusSuccess,
			ActionsExecuted: []models.ActionOutcome{
				models.Skipped("frobnicate", "Action type not implemented"),
			},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	require.NoError(t, repo.Create(ctx, &models.AutomationLog{AutomationID: "auto-1", Status: "success", CreatedAt: base.Add(-time.Hour)}))

	entries, err := repo.ListByAutomation(ctx, "auto-1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	require.NotNil(t, entries[0].PropertyID)
	assert.Equal(t, "prop-1", *entries[0].PropertyID)
	require.Len(t, entries[0].ActionsExecuted, 1)
	assert.Equal(t, "Action type not implemented", entries[0].ActionsExecuted[0].Reason)

	entries, err = repo.ListByAutomation(ctx, "auto-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Nil(t, entries[3].PropertyID)
	assert.Empty(t, entries[3].ActionsExecuted)
}
