package sms

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Relay consumes SMS requests queued on OutboundTopic and delivers them with
// a Sender, usually the FunctionSender.
type Relay struct {
	subscriber message.Subscriber
	sender     Sender
	logger     *slog.Logger
}

func NewRelay(subscriber message.Subscriber, sender Sender, logger *slog.Logger) *Relay {
	return &Relay{
		subscriber: subscriber,
		sender:     sender,
		logger:     logger.With("module", "sms_relay"),
	}
}

// Run subscribes to OutboundTopic and delivers messages until ctx is done or
// the subscriber is closed.
func (r *Relay) Run(ctx context.Context) error {
	messages, err := r.subscriber.Subscribe(ctx, OutboundTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			r.deliver(msg)
		}

		r.logger.InfoContext(ctx, "SMS relay stopped")
	}()

	return nil
}

// Messages the provider rejected or that cannot be decoded are dropped.
// Transport failures are nacked for redelivery.
func (r *Relay) deliver(msg *message.Message) {
	ctx := msg.Context()

	var request Request

	err := json.Unmarshal(msg.Payload, &request)
	if err != nil {
		r.logger.ErrorContext(ctx, "Dropping malformed SMS request", "message_id", msg.UUID, "error", err)
		msg.Ack()

		return
	}

	err = r.sender.Send(ctx, request)

	var sendErr *SendError

	switch {
	case err == nil:
		r.logger.InfoContext(ctx, "SMS delivered", "message_id", msg.UUID, "property_id", request.PropertyID)
		msg.Ack()
	case errors.As(err, &sendErr):
		r.logger.ErrorContext(ctx, "SMS rejected", "message_id", msg.UUID, "error", err)
		msg.Ack()
	default:
		r.logger.ErrorContext(ctx, "SMS delivery failed, will retry", "message_id", msg.UUID, "error", err)
		msg.Nack()
	}
}

func (r *Relay) Close() error {
	return r.subscriber.Close()
}
