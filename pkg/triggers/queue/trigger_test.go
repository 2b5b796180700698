package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestNewTrigger(t *testing.T) {
	trigger, err := NewTrigger(t.Context(), Config{}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", trigger.Config.Addr)
	assert.Equal(t, DefaultQueue, trigger.Config.Queue)
	assert.True(t, trigger.Enabled)

	_, err = NewTrigger(t.Context(), Config{Queue: "q", DB: -1}, slog.Default())
	assert.ErrorContains(t, err, "invalid db value")
}

func TestTrigger_Validate_RequiresQueue(t *testing.T) {
	trigger := &Trigger{Config: Config{Queue: "  "}}

	assert.EqualError(t, trigger.Validate(t.Context()), "queue trigger queue name is required")
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		expected    models.RunRequest
		expectError bool
	}{
		{
			name:     "defaults trigger type",
			message:  `{"automationId": "auto-1"}`,
			expected: models.RunRequest{AutomationID: "auto-1", TriggerType: TriggerType},
		},
		{
			name:     "keeps trigger type and property",
			message:  `{"automationId": "auto-1", "propertyId": "prop-1", "triggerType": "property_added"}`,
			expected: models.RunRequest{AutomationID: "auto-1", PropertyID: ptr("prop-1"), TriggerType: "property_added"},
		},
		{name: "not json", message: "run auto-1", expectError: true},
		{name: "missing automation", message: `{"propertyId": "prop-1"}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := DecodeRequest(tt.message)

			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidMessage)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, request)
		})
	}
}

func TestTrigger_Disabled(t *testing.T) {
	trigger, err := NewTrigger(t.Context(), Config{}, slog.Default())
	require.NoError(t, err)

	trigger.Enabled = false

	require.NoError(t, trigger.Start(t.Context(), nil))
	assert.Nil(t, trigger.client)
}

func TestTrigger_ConsumesFromRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	defer func() {
		err := testcontainers.TerminateContainer(container)
		if err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	trigger, err := NewTrigger(ctx, Config{Addr: addr, Queue: "dealflow:test"}, slog.Default())
	require.NoError(t, err)

	received := make(chan models.RunRequest, 2)
	require.NoError(t, trigger.Start(ctx, func(_ context.Context, request models.RunRequest) error {
		received <- request

		return nil
	}))

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	payload, err := json.Marshal(models.RunRequest{AutomationID: "auto-1", PropertyID: ptr("prop-1")})
	require.NoError(t, err)

	require.NoError(t, client.RPush(ctx, "dealflow:test", "garbage", string(payload)).Err())

	select {
	case request := <-received:
		assert.Equal(t, "auto-1", request.AutomationID)
		assert.Equal(t, "prop-1", *request.PropertyID)
		assert.Equal(t, TriggerType, request.TriggerType)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for queued run request")
	}

	require.NoError(t, trigger.Stop(ctx))
}

func ptr[T any](v T) *T {
	return &v
}
