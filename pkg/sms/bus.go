package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	// OutboundTopic carries SMS requests for an external delivery worker.
	OutboundTopic = "dealflow.sms.outbound"

	PhoneMetadataKey    = "to"
	PropertyMetadataKey = "property_id"
)

// BusSender hands SMS requests to a watermill publisher. Delivery is owned by
// whoever consumes OutboundTopic; Send only fails when publishing fails.
type BusSender struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewBusSender(publisher message.Publisher, logger *slog.Logger) *BusSender {
	return &BusSender{
		publisher: publisher,
		logger:    logger.With("module", "sms_bus_sender"),
	}
}

func (s *BusSender) Send(ctx context.Context, request Request) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	msg := message.NewMessage("sms-"+watermill.NewULID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set(PhoneMetadataKey, request.To)
	msg.Metadata.Set(PropertyMetadataKey, request.PropertyID)

	err = s.publisher.Publish(OutboundTopic, msg)
	if err != nil {
		return fmt.Errorf("failed to publish SMS request: %w", err)
	}

	s.logger.InfoContext(ctx, "SMS queued", "to", request.To, "message_id", msg.UUID)

	return nil
}
