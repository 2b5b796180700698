package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dealflow/dealflow/pkg/ai"
	"github.com/dealflow/dealflow/pkg/channels/kafka"
	"github.com/dealflow/dealflow/pkg/eventbus"
	"github.com/dealflow/dealflow/pkg/otelhelper"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/dealflow/dealflow/pkg/registry"
	"github.com/dealflow/dealflow/pkg/workflow"
	cli "github.com/urfave/cli/v3"
)

// Runtime holds the collaborators of an automation executor.
type Runtime struct {
	Persistence persistence.Persistence
	Registry    *registry.Registry
	EventBus    eventbus.EventBus
	Executor    *workflow.Executor

	logger *slog.Logger
}

// NewRuntime builds the executor and its collaborators from ExecutorFlags.
func NewRuntime(ctx context.Context, command *cli.Command, serviceName string, logger *slog.Logger) (*Runtime, error) {
	brokers := kafka.ParseBrokers(command.String("kafka-brokers"))

	p, err := NewPersistence(ctx, logger, command.String("database-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to open persistence: %w", err)
	}

	rt := &Runtime{Persistence: p, logger: logger}

	sender, err := NewSMSSender(SMSConfig{
		Provider:    command.String("sms-provider"),
		FunctionURL: command.String("sms-function-url"),
		ServiceKey:  command.String("service-role-key"),
		Brokers:     brokers,
	}, logger)
	if err != nil {
		rt.Close(ctx)

		return nil, err
	}

	generator := ai.NewClient(ai.Config{
		APIKey:  command.String("ai-api-key"),
		BaseURL: command.String("ai-base-url"),
		Model:   command.String("ai-model"),
		Logger:  logger,
	})
	if !generator.IsConfigured() {
		logger.WarnContext(ctx, "AI API key not set, auto-pilot SMS actions will fail")
	}

	rt.Registry = NewRegistry(logger, p, sender, generator)

	rt.EventBus, err = NewEventBus(command.String("event-bus"), logger, brokers)
	if err != nil {
		rt.Close(ctx)

		return nil, err
	}

	opts := make([]workflow.Option, 0, 2)

	if rt.EventBus != nil {
		opts = append(opts, workflow.WithEventPublisher(rt.EventBus))
	}

	if command.Bool("tracing") {
		tracer, err := otelhelper.NewTracer(ctx, serviceName)
		if err != nil {
			rt.Close(ctx)

			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}

		opts = append(opts, workflow.WithTracer(tracer))
	}

	rt.Executor = workflow.NewExecutor(p, rt.Registry, logger, opts...)

	return rt, nil
}

// Close releases the event bus and the store.
func (r *Runtime) Close(ctx context.Context) {
	if r.EventBus != nil {
		err := r.EventBus.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
		}
	}

	err := r.Persistence.Close(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
	}
}
