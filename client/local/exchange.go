package local

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	// Name is the exchange name of the local exchange.
	Name api.ExchangeName = "local"

	orderNotFoundCode = 110001
)

// Exchange is a local exchange implementation that keeps orders and balances in memory.
// It is used for dry runs and tests.
type Exchange struct {
	prices   map[string]float64
	books    map[string]model.OrderBook
	balances map[model.Coin]model.Balance
	orders   map[string]model.OrderState
	errs     map[string]error
	seq      int
	now      func() time.Time
	lock     *sync.Mutex
}

// NewExchange creates a new local exchange.
func NewExchange() *Exchange {
	return &Exchange{
		prices:   make(map[string]float64),
		books:    make(map[string]model.OrderBook),
		balances: make(map[model.Coin]model.Balance),
		orders:   make(map[string]model.OrderState),
		errs:     make(map[string]error),
		now:      time.Now,
		lock:     new(sync.Mutex),
	}
}

// WithPrice sets the last price for the symbol.
func (e *Exchange) WithPrice(symbol string, price float64) *Exchange {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.prices[symbol] = price
	return e
}

// WithBook sets the best bid and ask for the symbol.
func (e *Exchange) WithBook(symbol string, bid, ask float64) *Exchange {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.books[symbol] = model.OrderBook{
		Symbol: symbol,
		Bids:   []model.Level{{Price: bid, Size: 1}},
		Asks:   []model.Level{{Price: ask, Size: 1}},
	}
	return e
}

// WithBalance sets the available balance for the coin.
func (e *Exchange) WithBalance(coin model.Coin, available float64) *Exchange {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.balances[coin] = model.Balance{
		Coin:      coin,
		Available: available,
		Total:     available,
	}
	return e
}

// Fail makes all subsequent calls of the given method return the error.
// A nil error clears the failure.
func (e *Exchange) Fail(method string, err error) *Exchange {
	e.lock.Lock()
	defer e.lock.Unlock()
	if err == nil {
		delete(e.errs, method)
		return e
	}
	e.errs[method] = err
	return e
}

// Fill marks the order as filled.
func (e *Exchange) Fill(orderID string) bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	state, ok := e.orders[orderID]
	if !ok {
		return false
	}
	// funds stay spent
	state.Status = model.Filled
	e.orders[orderID] = state
	return true
}

// Orders returns the states of all orders placed on the exchange.
func (e *Exchange) Orders() map[string]model.OrderState {
	e.lock.Lock()
	defer e.lock.Unlock()
	orders := make(map[string]model.OrderState, len(e.orders))
	for id, state := range e.orders {
		orders[id] = state
	}
	return orders
}

func (e *Exchange) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.errs["CurrentPrice"]; err != nil {
		return 0, err
	}
	price, ok := e.prices[symbol]
	if !ok {
		return 0, &api.ExchangeError{Code: 10001, Message: fmt.Sprintf("unknown symbol: %s", symbol)}
	}
	return price, nil
}

func (e *Exchange) OrderBook(ctx context.Context, symbol string, depth int) (model.OrderBook, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.errs["OrderBook"]; err != nil {
		return model.OrderBook{}, err
	}
	book, ok := e.books[symbol]
	if !ok {
		return model.OrderBook{Symbol: symbol}, nil
	}
	return book, nil
}

func (e *Exchange) Balance(ctx context.Context, coin model.Coin) (model.Balance, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.errs["Balance"]; err != nil {
		return model.Balance{}, err
	}
	balance, ok := e.balances[coin]
	if !ok {
		return model.Balance{Coin: coin}, nil
	}
	return balance, nil
}

// OpenOrder places the order and reserves the cost from the quote balance.
func (e *Exchange) OpenOrder(ctx context.Context, order model.LimitOrder) (model.OrderAck, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.errs["OpenOrder"]; err != nil {
		return model.OrderAck{}, err
	}
	cost := order.Quantity * order.Price
	balance := e.balances[model.USDT]
	if !balance.Covers(cost) {
		return model.OrderAck{}, &api.ExchangeError{Code: 170131, Message: "insufficient balance"}
	}
	balance.Available -= cost
	e.balances[model.USDT] = balance

	e.seq++
	id := fmt.Sprintf("local-%d", e.seq)
	e.orders[id] = model.OrderState{
		OrderID: id,
		Symbol:  order.Symbol,
		Status:  model.New,
	}
	log.Debug().
		Str("id", id).
		Str("symbol", order.Symbol).
		Float64("quantity", order.Quantity).
		Float64("price", order.Price).
		Msg("local order")
	return model.OrderAck{
		OrderID:   id,
		Symbol:    order.Symbol,
		Side:      order.Side,
		OrderType: model.Limit,
		Quantity:  order.Quantity,
		Price:     order.Price,
		CreatedAt: e.now(),
	}, nil
}

func (e *Exchange) CancelOrder(ctx context.Context, symbol, orderID string) error {
	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.errs["CancelOrder"]; err != nil {
		return err
	}
	state, ok := e.orders[orderID]
	if !ok || !state.Status.Live() {
		return &api.ExchangeError{Code: orderNotFoundCode, Message: "order not exists or too late to cancel"}
	}
	state.Status = model.Cancelled
	e.orders[orderID] = state
	return nil
}

func (e *Exchange) OrderStatus(ctx context.Context, orderID string) (model.OrderState, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.errs["OrderStatus"]; err != nil {
		return model.OrderState{}, err
	}
	state, ok := e.orders[orderID]
	if !ok {
		return model.OrderState{}, &api.ExchangeError{Code: orderNotFoundCode, Message: "order not exists"}
	}
	return state, nil
}
