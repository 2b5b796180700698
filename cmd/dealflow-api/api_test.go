package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dealflow/dealflow/pkg/cmd"
	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence/file"
	"github.com/dealflow/dealflow/pkg/workflow"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *file.Persistence) {
	t.Helper()

	store := file.NewPersistence(t.TempDir())
	reg := cmd.NewRegistry(slog.Default(), store, nil, nil)

	runtime := &cmd.Runtime{
		Persistence: store,
		Registry:    reg,
		Executor:    workflow.NewExecutor(store, reg, slog.Default()),
	}

	return NewAPI(slog.Default(), runtime).App(), store
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestAPI_RootEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dealflow API", body)
}

func TestAPI_Liveness(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestAPI_Preflight(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/execute-automation", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")

	resp, body := send(t, app, req)

	assert.Less(t, resp.StatusCode, 300)
	assert.Empty(t, body)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	allowed := strings.ToLower(resp.Header.Get("Access-Control-Allow-Headers"))
	for _, header := range allowedHeaders {
		assert.Contains(t, allowed, header)
	}
}

func TestAPI_BareOptions(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name   string
		target string
		origin string
	}{
		{name: "root without headers", target: "/"},
		{name: "execute without headers", target: "/execute-automation"},
		{name: "execute with origin only", target: "/execute-automation", origin: "https://app.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, tt.target, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			resp, body := send(t, app, req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Empty(t, body)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Contains(t, strings.ToLower(resp.Header.Get("Access-Control-Allow-Headers")), "x-client-info")
		})
	}
}

func TestAPI_ExecuteAtRoot(t *testing.T) {
	app, store := setupTestApp(t)

	require.NoError(t, store.AutomationRepository().Save(t.Context(), &models.Automation{
		ID:       "auto-1",
		IsActive: true,
		FlowData: &models.FlowData{Nodes: []*models.Node{
			{ID: "a1", Type: models.NodeTypeAction, Data: models.NodeData{Label: "send_sms", Config: map[string]any{"message": "hi"}}},
		}},
	}))

	for _, path := range []string{"/", "/execute-automation"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"automationId": "auto-1", "triggerType": "manual"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://app.example.com")

		resp, body := send(t, app, req)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.JSONEq(t, `{
			"success": true,
			"actions": [{"type": "send_sms", "status": "skipped", "node_id": "a1", "reason": "No property or phone number"}],
			"summary": {"total": 1, "successful": 0, "failed": 0, "skipped": 1}
		}`, body)
	}
}

func TestAPI_Health(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "3 actions registered")
}
