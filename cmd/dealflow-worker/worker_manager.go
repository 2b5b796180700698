package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dealflow/dealflow/pkg/eventbus"
	"github.com/dealflow/dealflow/pkg/events"
	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/protocol"
)

// Executor runs one automation.
type Executor interface {
	Execute(ctx context.Context, request models.RunRequest) (*models.RunResult, error)
}

type WorkerManager struct {
	id       string
	logger   *slog.Logger
	executor Executor
	triggers []protocol.Trigger
	eventBus eventbus.EventBus
}

func NewWorkerManager(
	id string,
	executor Executor,
	triggers []protocol.Trigger,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
) *WorkerManager {
	return &WorkerManager{
		id:       id,
		logger:   logger.With("module", "dealflow-worker", "worker_id", id),
		executor: executor,
		triggers: triggers,
		eventBus: eventBus,
	}
}

// Start runs the triggers until SIGINT or SIGTERM.
func (w *WorkerManager) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := w.Run(ctx)
	if err != nil {
		return err
	}

	<-ctx.Done()
	w.logger.InfoContext(ctx, "Shutting down worker...")

	return w.Stop(context.WithoutCancel(ctx))
}

// Run starts every trigger and the event subscription without blocking.
func (w *WorkerManager) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Starting worker manager", "triggers", len(w.triggers))

	if w.eventBus != nil {
		err := w.subscribe(ctx)
		if err != nil {
			return err
		}
	}

	for _, trigger := range w.triggers {
		err := trigger.Start(ctx, w.handleRunRequest)
		if err != nil {
			w.logger.ErrorContext(ctx, "Failed to start trigger", "error", err)

			return errors.Join(err, w.Stop(ctx))
		}
	}

	w.logger.InfoContext(ctx, "Worker started successfully")

	return nil
}

func (w *WorkerManager) Stop(ctx context.Context) error {
	var errs []error

	for _, trigger := range w.triggers {
		errs = append(errs, trigger.Stop(ctx))
	}

	return errors.Join(errs...)
}

func (w *WorkerManager) handleRunRequest(ctx context.Context, request models.RunRequest) error {
	result, err := w.executor.Execute(ctx, request)
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Automation run finished",
		"automation_id", request.AutomationID,
		"trigger_type", request.TriggerType,
		"total", result.Summary.Total,
		"failed", result.Summary.Failed,
	)

	return nil
}

func (w *WorkerManager) subscribe(ctx context.Context) error {
	err := w.eventBus.Handle(events.AutomationExecutedEvent, w.handleAutomationExecuted)
	if err != nil {
		return err
	}

	err = w.eventBus.Handle(events.AutomationFailedEvent, w.handleAutomationFailed)
	if err != nil {
		return err
	}

	err = w.eventBus.Subscribe(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to subscribe to event bus", "error", err)

		return err
	}

	return nil
}

func (w *WorkerManager) handleAutomationExecuted(ctx context.Context, event any) error {
	executed, ok := event.(*events.AutomationExecuted)
	if !ok {
		w.logger.ErrorContext(ctx, "Invalid event type for AutomationExecuted")

		return nil
	}

	w.logger.InfoContext(ctx, "Automation executed",
		"automation_id", executed.AutomationID,
		"execution_id", executed.ExecutionID,
		"successful", executed.Summary.Successful,
		"failed", executed.Summary.Failed,
		"skipped", executed.Summary.Skipped,
		"duration", executed.Duration,
	)

	return nil
}

func (w *WorkerManager) handleAutomationFailed(ctx context.Context, event any) error {
	failed, ok := event.(*events.AutomationFailed)
	if !ok {
		w.logger.ErrorContext(ctx, "Invalid event type for AutomationFailed")

		return nil
	}

	w.logger.WarnContext(ctx, "Automation run rejected",
		"automation_id", failed.AutomationID,
		"execution_id", failed.ExecutionID,
		"error", failed.Error,
	)

	return nil
}
