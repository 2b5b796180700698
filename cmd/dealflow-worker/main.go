// Package main provides the Dealflow worker, which runs automations from queued and scheduled triggers.
package main

import (
	"context"
	"os"

	"github.com/dealflow/dealflow/pkg/channels/kafka"
	"github.com/dealflow/dealflow/pkg/cmd"
	"github.com/dealflow/dealflow/pkg/log"
	"github.com/dealflow/dealflow/pkg/protocol"
	"github.com/dealflow/dealflow/pkg/triggers/queue"
	"github.com/dealflow/dealflow/pkg/triggers/schedule"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "dealflow-worker",
		EnableShellCompletion: true,
		Usage:                 "Run automations from queued and scheduled triggers",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "worker-id",
				Aliases: []string{"id"},
				Usage:   "Custom worker ID (auto-generated if not provided)",
				Sources: cli.EnvVars("WORKER_ID"),
			},
			&cli.BoolFlag{
				Name:    "queue-enabled",
				Usage:   "Consume run requests from the Redis queue",
				Value:   true,
				Sources: cli.EnvVars("QUEUE_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address of the trigger queue",
				Value:   "localhost:6379",
				Sources: cli.EnvVars("REDIS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				Sources: cli.EnvVars("REDIS_PASSWORD"),
			},
			&cli.IntFlag{
				Name:    "redis-db",
				Usage:   "Redis database number",
				Sources: cli.EnvVars("REDIS_DB"),
			},
			&cli.StringFlag{
				Name:    "queue",
				Usage:   "Redis list holding JSON run requests",
				Value:   queue.DefaultQueue,
				Sources: cli.EnvVars("TRIGGER_QUEUE"),
			},
			&cli.BoolFlag{
				Name:    "sms-relay",
				Usage:   "Deliver SMS requests queued on Kafka through the SMS function",
				Sources: cli.EnvVars("SMS_RELAY"),
			},
			&cli.StringSliceFlag{
				Name:  "schedule",
				Usage: "Scheduled automation as automationId=<cron expression>, repeatable",
			},
		}, cmd.ExecutorFlags()...),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"), command.String("log-format"))

			workerID := command.String("worker-id")
			if workerID == "" {
				workerID = "worker-" + uuid.New().String()[:8]
			}

			logger := log.WithModule("dealflow-worker").With("workerId", workerID)

			logger.InfoContext(ctx, "Initializing Dealflow Worker")

			triggers := make([]protocol.Trigger, 0)

			for _, spec := range command.StringSlice("schedule") {
				trigger, err := schedule.ParseSpec(spec, logger)
				if err != nil {
					return err
				}

				triggers = append(triggers, trigger)
			}

			if command.Bool("queue-enabled") {
				trigger, err := queue.NewTrigger(ctx, queue.Config{
					Addr:     command.String("redis-addr"),
					Password: command.String("redis-password"),
					DB:       int(command.Int("redis-db")),
					Queue:    command.String("queue"),
				}, logger)
				if err != nil {
					return err
				}

				triggers = append(triggers, trigger)
			}

			runtime, err := cmd.NewRuntime(ctx, command, "dealflow-worker", logger)
			if err != nil {
				return err
			}
			defer runtime.Close(ctx)

			if command.Bool("sms-relay") {
				relay, err := cmd.NewSMSRelay(cmd.SMSConfig{
					FunctionURL: command.String("sms-function-url"),
					ServiceKey:  command.String("service-role-key"),
					Brokers:     kafka.ParseBrokers(command.String("kafka-brokers")),
				}, "dealflow-sms-relay", logger)
				if err != nil {
					return err
				}
				defer func() { _ = relay.Close() }()

				err = relay.Run(ctx)
				if err != nil {
					return err
				}
			}

			worker := NewWorkerManager(workerID, runtime.Executor, triggers, runtime.EventBus, logger)

			err = worker.Start(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start worker", "error", err)
			}

			return err
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		log.WithModule("dealflow-worker").Error("Dealflow worker stopped", "error", err)
		os.Exit(1)
	}
}
