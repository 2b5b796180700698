package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dealflow/dealflow/pkg/channels/gochannel"
	"github.com/dealflow/dealflow/pkg/channels/kafka"
	"github.com/dealflow/dealflow/pkg/eventbus"
)

// NewEventBus creates the run event bus. The "none" provider returns nil.
//
//nolint:ireturn // EventBus is the contract consumed by the executor
func NewEventBus(provider string, logger *slog.Logger, brokers []string) (eventbus.EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	switch provider {
	case "", "none":
		return nil, nil
	case "gochannel":
		pub, sub, err := gochannel.CreateChannel(wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create GoChannel pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	case "kafka":
		pub, sub, err := kafka.CreateChannel(wmLogger, "dealflow", brokers)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	default:
		return nil, fmt.Errorf("unsupported event bus provider: %s", provider)
	}
}
