package local

import (
	"context"

	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockExchange is a testify mock of the exchange gateway.
type MockExchange struct {
	mock.Mock
}

// NewMockExchange creates a new mock exchange implementation.
func NewMockExchange() *MockExchange {
	return &MockExchange{}
}

func (m *MockExchange) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockExchange) OrderBook(ctx context.Context, symbol string, depth int) (model.OrderBook, error) {
	args := m.Called(ctx, symbol, depth)
	return args.Get(0).(model.OrderBook), args.Error(1)
}

func (m *MockExchange) Balance(ctx context.Context, coin model.Coin) (model.Balance, error) {
	args := m.Called(ctx, coin)
	return args.Get(0).(model.Balance), args.Error(1)
}

func (m *MockExchange) OpenOrder(ctx context.Context, order model.LimitOrder) (model.OrderAck, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(model.OrderAck), args.Error(1)
}

func (m *MockExchange) CancelOrder(ctx context.Context, symbol, orderID string) error {
	args := m.Called(ctx, symbol, orderID)
	return args.Error(0)
}

func (m *MockExchange) OrderStatus(ctx context.Context, orderID string) (model.OrderState, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.OrderState), args.Error(1)
}
