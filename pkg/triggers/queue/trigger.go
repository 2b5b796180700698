// Package queue runs automations from run requests pushed onto a Redis list.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/protocol"
	redis "github.com/redis/go-redis/v9"
)

const (
	// DefaultQueue is the list the worker consumes when none is configured.
	DefaultQueue = "dealflow:triggers"

	// TriggerType is recorded when a queued request does not name one.
	TriggerType = "queue"

	popTimeout = 1 * time.Second
)

var ErrInvalidMessage = errors.New("invalid run request message")

type Config struct {
	Addr     string
	Password string
	DB       int
	Queue    string
}

type Trigger struct {
	Config  Config
	Enabled bool

	client   redis.UniversalClient
	callback protocol.TriggerCallback
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	runs     sync.WaitGroup
}

func NewTrigger(ctx context.Context, config Config, logger *slog.Logger) (*Trigger, error) {
	if config.Addr == "" {
		config.Addr = "localhost:6379"
	}

	if config.Queue == "" {
		config.Queue = DefaultQueue
	}

	trigger := &Trigger{
		Config:  config,
		Enabled: true,
		stopCh:  make(chan struct{}),
		logger: logger.With(
			"module", "queue_trigger",
			"provider", "redis",
			"queue", config.Queue,
		),
	}

	err := trigger.Validate(ctx)
	if err != nil {
		return nil, err
	}

	return trigger, nil
}

func (t *Trigger) Validate(_ context.Context) error {
	if strings.TrimSpace(t.Config.Queue) == "" {
		return errors.New("queue trigger queue name is required")
	}

	if t.Config.DB < 0 {
		return fmt.Errorf("invalid db value: %d", t.Config.DB)
	}

	return nil
}

func (t *Trigger) Start(ctx context.Context, callback protocol.TriggerCallback) error {
	if !t.Enabled {
		t.logger.InfoContext(ctx, "QueueTrigger is disabled.")

		return nil
	}

	t.logger.InfoContext(ctx, "Starting QueueTrigger")
	t.callback = callback

	err := t.initializeClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize queue client: %w", err)
	}

	t.wg.Add(1)

	go t.consume(ctx)

	return nil
}

func (t *Trigger) initializeClient(ctx context.Context) error {
	t.client = redis.NewClient(&redis.Options{
		Addr:     t.Config.Addr,
		Password: t.Config.Password,
		DB:       t.Config.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := t.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	t.logger.InfoContext(ctx, "Connected to Redis", "addr", t.Config.Addr, "db", t.Config.DB)

	return nil
}

func (t *Trigger) consume(ctx context.Context) {
	defer t.wg.Done()

	t.logger.InfoContext(ctx, "Starting queue consumer")

	for {
		select {
		case <-t.stopCh:
			t.logger.InfoContext(ctx, "Queue consumer stopped")

			return
		case <-ctx.Done():
			t.logger.InfoContext(ctx, "Context cancelled, stopping queue consumer")

			return
		default:
			err := t.processMessage(ctx)
			if err != nil && ctx.Err() == nil {
				t.logger.ErrorContext(ctx, "Error processing message", "error", err)

				if !errors.Is(err, ErrInvalidMessage) {
					time.Sleep(1 * time.Second)
				}
			}
		}
	}
}

func (t *Trigger) processMessage(ctx context.Context) error {
	result, err := t.client.BLPop(ctx, popTimeout, t.Config.Queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}

		return fmt.Errorf("failed to pop message from queue: %w", err)
	}

	if len(result) < 2 {
		return nil
	}

	request, err := DecodeRequest(result[1])
	if err != nil {
		return err
	}

	t.logger.InfoContext(ctx, "Received run request", "automation_id", request.AutomationID)

	t.runs.Add(1)

	go func() {
		defer t.runs.Done()

		err := t.callback(ctx, request)
		if err != nil {
			t.logger.ErrorContext(ctx, "Error executing automation for trigger",
				"automation_id", request.AutomationID, "error", err)
		}
	}()

	return nil
}

// DecodeRequest parses a queued message. A request without a trigger type is
// recorded as a queue run.
func DecodeRequest(message string) (models.RunRequest, error) {
	var request models.RunRequest

	err := json.Unmarshal([]byte(message), &request)
	if err != nil {
		return request, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if request.AutomationID == "" {
		return request, fmt.Errorf("%w: automationId is required", ErrInvalidMessage)
	}

	if request.TriggerType == "" {
		request.TriggerType = TriggerType
	}

	return request, nil
}

// Stop ends consumption and waits for runs in flight.
func (t *Trigger) Stop(ctx context.Context) error {
	t.logger.InfoContext(ctx, "Stopping QueueTrigger")

	close(t.stopCh)
	t.wg.Wait()
	t.runs.Wait()

	if t.client != nil {
		err := t.client.Close()
		if err != nil {
			t.logger.ErrorContext(ctx, "Error closing Redis client", "error", err)
		}
	}

	return nil
}
