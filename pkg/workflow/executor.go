// Package workflow runs automations: it loads the automation and its property,
// dispatches every action node in stored order and records the run.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealflow/dealflow/pkg/eventbus"
	"github.com/dealflow/dealflow/pkg/log"
	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/otelhelper"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrAutomationInactive is returned when the requested automation is missing or not active.
var ErrAutomationInactive = errors.New("automation not found or inactive")

// Dispatcher turns one action node into exactly one outcome.
type Dispatcher interface {
	Dispatch(ctx context.Context, node *models.Node, run *models.RunContext) models.ActionOutcome
}

type Executor struct {
	persistence persistence.Persistence
	dispatcher  Dispatcher
	recorder    *Recorder
	tracer      trace.Tracer
	logger      *slog.Logger
	now         func() time.Time
}

type Option func(*Executor)

// WithEventPublisher publishes run events after each run.
func WithEventPublisher(publisher eventbus.EventPublisher) Option {
	return func(e *Executor) {
		e.recorder.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Executor) {
		e.tracer = tracer
	}
}

// WithClock overrides the time source handed to actions.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

func NewExecutor(p persistence.Persistence, dispatcher Dispatcher, logger *slog.Logger, opts ...Option) *Executor {
	logger = logger.With("module", "automation_executor")

	e := &Executor{
		persistence: p,
		dispatcher:  dispatcher,
		recorder:    NewRecorder(p, nil, logger),
		tracer:      otelhelper.DefaultTracer("dealflow.executor"),
		logger:      logger,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs one automation. An error is returned only when the run could
// not start or broke unexpectedly; action failures are reported as outcomes.
func (e *Executor) Execute(ctx context.Context, request models.RunRequest) (result *models.RunResult, err error) {
	started := e.now()
	executionID := newExecutionID()

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "automation.execute",
		attribute.String(otelhelper.AutomationIDKey, request.AutomationID),
		attribute.String(otelhelper.TriggerTypeKey, request.TriggerType),
		attribute.String(otelhelper.ExecutionIDKey, executionID),
	)
	defer span.End()

	logger := log.WithRun(e.logger, request.AutomationID, executionID, request.TriggerType)

	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorContext(ctx, "Automation run panicked", "panic", rec)

			result = nil
			err = fmt.Errorf("automation run failed: %v", rec)
		}

		if err != nil {
			otelhelper.SetError(span, err)
			e.recorder.Failed(ctx, executionID, request, err)
		}
	}()

	automation, err := e.persistence.AutomationRepository().GetActiveByID(ctx, request.AutomationID)
	if err != nil {
		logger.ErrorContext(ctx, "Automation not runnable", "error", err)

		return nil, ErrAutomationInactive
	}

	span.SetAttributes(attribute.String(otelhelper.AutomationNameKey, automation.Name))

	run := &models.RunContext{
		ExecutionID: executionID,
		Automation:  automation,
		Property:    e.loadProperty(ctx, logger, request),
		TriggerType: request.TriggerType,
		Now:         started,
	}

	logger.InfoContext(ctx, "Starting automation run", "has_property", run.Property != nil)

	nodes := automation.ActionNodes()
	actions := make([]models.ActionOutcome, 0, len(nodes))

	for _, node := range nodes {
		actions = append(actions, e.dispatch(ctx, node, run))
	}

	result = &models.RunResult{
		Success: true,
		Actions: actions,
		Summary: models.Summarize(actions),
	}

	e.recorder.Completed(ctx, run, request, result, e.now().Sub(started))

	logger.InfoContext(ctx, "Completed automation run",
		"total", result.Summary.Total,
		"successful", result.Summary.Successful,
		"failed", result.Summary.Failed,
		"skipped", result.Summary.Skipped,
	)

	return result, nil
}

// loadProperty returns nil when no property was requested or it could not be read.
func (e *Executor) loadProperty(ctx context.Context, logger *slog.Logger, request models.RunRequest) *models.Property {
	if !request.HasProperty() {
		return nil
	}

	property, err := e.persistence.PropertyRepository().GetByID(ctx, *request.PropertyID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load property, continuing without it",
			"property_id", *request.PropertyID, "error", err)

		return nil
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String(otelhelper.PropertyIDKey, property.ID))

	return property
}

func (e *Executor) dispatch(ctx context.Context, node *models.Node, run *models.RunContext) models.ActionOutcome {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "automation.action",
		attribute.String(otelhelper.NodeIDKey, node.ID),
		attribute.String(otelhelper.ActionTypeKey, node.Data.Label),
	)
	defer span.End()

	outcome := e.dispatcher.Dispatch(ctx, node, run)

	otelhelper.RecordOutcome(span, string(outcome.Status), outcome.Reason, outcome.Error)

	return outcome
}

func newExecutionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
