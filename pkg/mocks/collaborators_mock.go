package mocks

import (
	"context"

	"github.com/dealflow/dealflow/pkg/ai"
	"github.com/dealflow/dealflow/pkg/sms"
	"github.com/stretchr/testify/mock"
)

// MockSMSSender is a mock implementation of sms.Sender interface.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, request sms.Request) error {
	args := m.Called(ctx, request)

	return args.Error(0)
}

// MockMessageGenerator is a mock chat-completion client.
type MockMessageGenerator struct {
	mock.Mock
}

func (m *MockMessageGenerator) Complete(ctx context.Context, request ai.ChatRequest) (string, error) {
	args := m.Called(ctx, request)

	return args.String(0), args.Error(1)
}
