// Package web provides the HTTP handlers of the automation API.
package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/registry"
	"github.com/dealflow/dealflow/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// Executor runs one automation.
type Executor interface {
	Execute(ctx context.Context, request models.RunRequest) (*models.RunResult, error)
}

type APIHandlers struct {
	executor           Executor
	automationsService *services.Automation
	validator          *validator.Validate
	registry           *registry.Registry
}

func NewAPIHandlers(
	executor Executor,
	automationsService *services.Automation,
	validator *validator.Validate,
	registry *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		executor:           executor,
		automationsService: automationsService,
		validator:          validator,
		registry:           registry,
	}
}

// ExecuteAutomation runs an automation and answers with its outcomes. Any
// failure, including a malformed body, is a 400 with success false.
func (h *APIHandlers) ExecuteAutomation(c fiber.Ctx) error {
	var req models.RunRequest
	if err := c.Bind().JSON(&req); err != nil {
		return runError(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return runError(c, validationMessage(err))
	}

	result, err := h.executor.Execute(c.Context(), req)
	if err != nil {
		return runError(c, err.Error())
	}

	return c.JSON(result)
}

func (h *APIHandlers) GetAvailableActions(c fiber.Ctx) error {
	factories := h.registry.GetAvailableActions()

	actions := make([]ActionResponse, 0, len(factories))
	for _, factory := range factories {
		actions = append(actions, ActionResponse{
			ID:          factory.ID(),
			Name:        factory.Name(),
			Description: factory.Description(),
			Schema:      factory.Schema(),
		})
	}

	return c.JSON(actions)
}

func (h *APIHandlers) GetAutomation(c fiber.Ctx) error {
	automation, err := h.automationsService.GetAutomation(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(automation)
}

func (h *APIHandlers) GetAutomationLogs(c fiber.Ctx) error {
	id := c.Params("id")
	limit := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "Invalid query parameters: limit must be a number")
		}

		limit = parsed
	}

	entries, err := h.automationsService.ListLogs(c.Context(), id, limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	if limit == 0 {
		limit = services.DefaultLogLimit
	}

	return c.JSON(AutomationLogsResponse{AutomationID: id, Logs: entries, Limit: limit})
}

func (h *APIHandlers) UpdateAutomationFlow(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest(c, "Flow data is required")
	}

	automation, err := h.automationsService.UpdateFlow(c.Context(), c.Params("id"), body)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(automation)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.automationsService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Dealflow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "Dealflow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
