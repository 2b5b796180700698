package sms

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	received []Request
	errs     []error
}

func (s *recordingSender) Send(_ context.Context, request Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.received = append(s.received, request)

	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]

		return err
	}

	return nil
}

func (s *recordingSender) Received() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.received...)
}

func startRelay(t *testing.T, sender Sender) *gochannel.GoChannel {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	relay := NewRelay(pubSub, sender, slog.Default())
	require.NoError(t, relay.Run(t.Context()))

	t.Cleanup(func() { _ = relay.Close() })

	return pubSub
}

func TestRelay_DeliversQueuedMessages(t *testing.T) {
	delivery := &recordingSender{}
	pubSub := startRelay(t, delivery)

	err := NewBusSender(pubSub, slog.Default()).Send(t.Context(), Request{To: "+15551234567", Message: "Hi Dana", PropertyID: "prop-1"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(delivery.Received()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, Request{To: "+15551234567", Message: "Hi Dana", PropertyID: "prop-1"}, delivery.Received()[0])
}

func TestRelay_RetriesTransportFailures(t *testing.T) {
	delivery := &recordingSender{errs: []error{errors.New("connection reset")}}
	pubSub := startRelay(t, delivery)

	require.NoError(t, NewBusSender(pubSub, slog.Default()).Send(t.Context(), Request{To: "1", Message: "m"}))

	assert.Eventually(t, func() bool { return len(delivery.Received()) == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestRelay_DropsRejectedAndMalformedMessages(t *testing.T) {
	delivery := &recordingSender{errs: []error{&SendError{StatusCode: 400, Message: "invalid phone number"}}}
	pubSub := startRelay(t, delivery)

	require.NoError(t, pubSub.Publish(OutboundTopic, message.NewMessage(watermill.NewULID(), []byte("not json"))))
	require.NoError(t, NewBusSender(pubSub, slog.Default()).Send(t.Context(), Request{To: "1", Message: "rejected"}))
	require.NoError(t, NewBusSender(pubSub, slog.Default()).Send(t.Context(), Request{To: "1", Message: "next"}))

	assert.Eventually(t, func() bool { return len(delivery.Received()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return len(delivery.Received()) > 2 }, 100*time.Millisecond, 10*time.Millisecond)

	messages := make([]string, 0, 2)
	for _, request := range delivery.Received() {
		messages = append(messages, request.Message)
	}

	assert.ElementsMatch(t, []string{"rejected", "next"}, messages)
}
