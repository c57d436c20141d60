package gemini

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a testify mock for the native-path dependency.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GenerateJSON(ctx context.Context, req GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) NewChat(cfg ChatConfig) Session {
	args := m.Called(cfg)
	return args.Get(0).(Session)
}

// MockSession is a testify mock for a single chat.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) SendMessage(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
