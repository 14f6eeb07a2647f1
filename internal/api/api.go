package api

import (
	"context"

	"github.com/drakos74/free-coin-cross/internal/model"
)

// ExchangeName is the name of an exchange as used in series keys and configuration.
type ExchangeName string

// Exchange is the signed gateway to the trading account.
// All calls are blocking network calls and none of them is retried.
type Exchange interface {
	// CurrentPrice returns the last traded price for the order symbol.
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
	// OrderBook returns the top levels of the book for the order symbol.
	OrderBook(ctx context.Context, symbol string, depth int) (model.OrderBook, error)
	// Balance returns the balance of the given coin.
	Balance(ctx context.Context, coin model.Coin) (model.Balance, error)
	// OpenOrder places a limit order.
	OpenOrder(ctx context.Context, order model.LimitOrder) (model.OrderAck, error)
	// CancelOrder cancels a live order.
	CancelOrder(ctx context.Context, symbol, orderID string) error
	// OrderStatus returns the current state of an order.
	OrderStatus(ctx context.Context, orderID string) (model.OrderState, error)
}

// VolumeSource provides the rolling quote volume for a symbol on an exchange.
type VolumeSource interface {
	Name() ExchangeName
	QuoteVolume(ctx context.Context, symbol string) (float64, error)
}

// User defines an external interface for sharing information with the user(s).
type User interface {
	Send(message *Message) error
}
