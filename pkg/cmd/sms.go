package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dealflow/dealflow/pkg/channels/kafka"
	"github.com/dealflow/dealflow/pkg/sms"
)

var ErrMissingFunctionURL = errors.New("SMS function URL is required")

type SMSConfig struct {
	Provider    string
	FunctionURL string
	ServiceKey  string
	Brokers     []string
}

// NewSMSSender creates the outbound SMS sender for the configured provider.
// The kafka provider only queues messages; a worker running NewSMSRelay
// delivers them.
//
//nolint:ireturn // callers only need the Sender contract
func NewSMSSender(config SMSConfig, logger *slog.Logger) (sms.Sender, error) {
	switch config.Provider {
	case "", "function":
		return newFunctionSender(config, logger)
	case "kafka":
		pub, err := kafka.CreatePublisher(watermill.NewSlogLogger(logger), config.Brokers)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
		}

		return sms.NewBusSender(pub, logger), nil
	default:
		return nil, fmt.Errorf("unsupported SMS provider: %s", config.Provider)
	}
}

// NewSMSRelay consumes SMS requests queued on Kafka and delivers them through
// the SMS function.
func NewSMSRelay(config SMSConfig, serviceName string, logger *slog.Logger) (*sms.Relay, error) {
	sender, err := newFunctionSender(config, logger)
	if err != nil {
		return nil, err
	}

	sub, err := kafka.CreateSubscriber(watermill.NewSlogLogger(logger), serviceName, config.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}

	return sms.NewRelay(sub, sender, logger), nil
}

func newFunctionSender(config SMSConfig, logger *slog.Logger) (*sms.FunctionSender, error) {
	if config.FunctionURL == "" {
		return nil, ErrMissingFunctionURL
	}

	return sms.NewFunctionSender(config.FunctionURL, config.ServiceKey, &http.Client{Timeout: 30 * time.Second}, logger), nil
}
