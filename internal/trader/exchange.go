package trader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/events"
	"github.com/drakos74/free-coin-cross/internal/metrics"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/drakos74/free-coin-cross/internal/recommend"
	"github.com/rs/zerolog/log"
)

const (
	actionOpen    = "open"
	actionCancel  = "cancel"
	actionRefresh = "refresh"
)

// Executor places and manages the limit orders created from recommendations.
type Executor struct {
	exchange api.Exchange
	book     *book
	pool     *recommend.Pool
	hub      *events.Hub
	now      func() time.Time
}

// NewExecutor creates a new order executor.
func NewExecutor(exchange api.Exchange, pool *recommend.Pool, hub *events.Hub) *Executor {
	return &Executor{
		exchange: exchange,
		book:     newBook(),
		pool:     pool,
		hub:      hub,
		now:      time.Now,
	}
}

// WithClock overrides the clock of the executor.
func (e *Executor) WithClock(now func() time.Time) *Executor {
	e.now = now
	return e
}

// Execute places a limit buy for the recommendation at the given price, or at its default price if none is given.
// Failures before the order is sent are returned as errors,
// while a rejected placement is reported in the result.
func (e *Executor) Execute(ctx context.Context, rec model.Recommendation, price *float64) (model.ExecutionResult, error) {
	now := e.now()
	if rec.Expired(now) {
		return model.ExecutionResult{}, fmt.Errorf("recommendation %s expired at %s: %w", rec.ID, rec.ExpiresAt.Format(time.RFC3339), api.ExpiredErr)
	}

	finalPrice := rec.DefaultPrice
	if price != nil {
		finalPrice = *price
	}
	if finalPrice <= 0 {
		return model.ExecutionResult{}, fmt.Errorf("invalid limit price %f: %w", finalPrice, api.ValidationErr)
	}

	symbol := rec.OrderSymbol
	if symbol == "" {
		symbol = model.Pair(rec.Symbol)
	}

	balance, err := e.exchange.Balance(ctx, model.USDT)
	if err != nil {
		return model.ExecutionResult{}, fmt.Errorf("could not get balance: %w", err)
	}
	cost := rec.Quantity * finalPrice
	if !balance.Covers(cost) {
		log.Warn().
			Str("id", rec.ID).
			Str("symbol", symbol).
			Float64("available", balance.Available).
			Float64("cost", cost).
			Msg("insufficient balance")
		return model.ExecutionResult{}, fmt.Errorf("available %.2f for cost %.2f: %w", balance.Available, cost, api.InsufficientBalanceErr)
	}

	ack, err := e.exchange.OpenOrder(ctx, model.NewLimitBuy(symbol, rec.Quantity, finalPrice))
	if err != nil {
		log.Error().Err(err).
			Str("id", rec.ID).
			Str("symbol", symbol).
			Float64("quantity", rec.Quantity).
			Float64("price", finalPrice).
			Msg("could not place order")
		metrics.Observer.Order(symbol, actionOpen, "error")
		e.hub.OrderErrors.Publish(events.OrderError{
			Action:           actionOpen,
			Symbol:           symbol,
			RecommendationID: rec.ID,
			Err:              err,
		})
		return model.ExecutionResult{
			Success:          false,
			Symbol:           symbol,
			RecommendationID: rec.ID,
			Error:            err.Error(),
		}, nil
	}

	order := model.ActiveOrder{
		OrderID:          ack.OrderID,
		Symbol:           symbol,
		Side:             model.Buy,
		OrderType:        model.Limit,
		Quantity:         rec.Quantity,
		LimitPrice:       finalPrice,
		Status:           model.Pending,
		RecommendationID: rec.ID,
		CreatedAt:        now,
		LastChecked:      now,
	}
	e.book.add(order)

	log.Info().
		Str("order-id", order.OrderID).
		Str("id", rec.ID).
		Str("symbol", symbol).
		Float64("quantity", order.Quantity).
		Float64("price", order.LimitPrice).
		Msg("order placed")
	metrics.Observer.Order(symbol, actionOpen, "ok")
	rec.Status = model.RecommendationExecuted
	e.hub.OrdersPlaced.Publish(events.OrderPlaced{
		Order:          order,
		Recommendation: rec,
	})

	return model.ExecutionResult{
		Success:          true,
		OrderID:          order.OrderID,
		Symbol:           symbol,
		Quantity:         order.Quantity,
		LimitPrice:       order.LimitPrice,
		Status:           model.Pending,
		RecommendationID: rec.ID,
	}, nil
}

// ExecuteByID executes a pending recommendation from the pool.
// The recommendation goes back to the pool if no order could be placed, unless it has expired.
func (e *Executor) ExecuteByID(ctx context.Context, id string, price *float64) (model.ExecutionResult, error) {
	rec, err := e.pool.Claim(id, e.now())
	if err != nil {
		return model.ExecutionResult{}, err
	}
	result, err := e.Execute(ctx, rec, price)
	if err != nil {
		if !errors.Is(err, api.ExpiredErr) {
			e.pool.Restore(rec)
		}
		return result, err
	}
	if !result.Success {
		e.pool.Restore(rec)
		return result, nil
	}
	metrics.Observer.Recommendation(rec.OrderSymbol, string(model.RecommendationExecuted))
	return result, nil
}

// Cancel cancels a tracked order.
// It returns false if the exchange did not accept the cancellation, in which case the order stays tracked.
func (e *Executor) Cancel(ctx context.Context, orderID string) (bool, error) {
	order, ok := e.book.get(orderID)
	if !ok {
		return false, fmt.Errorf("order %s: %w", orderID, api.NotFoundErr)
	}
	err := e.exchange.CancelOrder(ctx, order.Symbol, orderID)
	if err != nil {
		log.Error().Err(err).
			Str("order-id", orderID).
			Str("symbol", order.Symbol).
			Msg("could not cancel order")
		metrics.Observer.Order(order.Symbol, actionCancel, "error")
		e.hub.OrderErrors.Publish(events.OrderError{
			Action:           actionCancel,
			Symbol:           order.Symbol,
			OrderID:          orderID,
			RecommendationID: order.RecommendationID,
			Err:              err,
		})
		return false, nil
	}
	e.book.remove(orderID)
	log.Info().
		Str("order-id", orderID).
		Str("symbol", order.Symbol).
		Msg("order cancelled")
	metrics.Observer.Order(order.Symbol, actionCancel, "ok")
	return true, nil
}

// ListActive returns all tracked orders, oldest first.
func (e *Executor) ListActive() []model.ActiveOrder {
	return e.book.getAll(all)
}

// ListActiveBySymbol returns the tracked orders for the symbol, oldest first.
func (e *Executor) ListActiveBySymbol(symbol string) []model.ActiveOrder {
	return e.book.getAll(bySymbol(symbol))
}

// Refresh updates the status of the tracked orders from the exchange.
// Orders that can no longer fill are dropped. Failed lookups leave the order untouched.
func (e *Executor) Refresh(ctx context.Context) (dropped []model.ActiveOrder) {
	dropped = make([]model.ActiveOrder, 0)
	for _, order := range e.book.getAll(all) {
		state, err := e.exchange.OrderStatus(ctx, order.OrderID)
		if err != nil {
			log.Warn().Err(err).
				Str("order-id", order.OrderID).
				Str("symbol", order.Symbol).
				Msg("could not refresh order")
			metrics.Observer.Order(order.Symbol, actionRefresh, "error")
			continue
		}
		order.Status = state.Status
		order.LastChecked = e.now()
		if !state.Status.Live() {
			if e.book.remove(order.OrderID) {
				log.Info().
					Str("order-id", order.OrderID).
					Str("symbol", order.Symbol).
					Str("status", string(state.Status)).
					Msg("order closed")
				dropped = append(dropped, order)
			}
			continue
		}
		e.book.update(order)
	}
	return dropped
}
