package events

import (
	"sync"

	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
)

// Handler consumes an event.
type Handler[T any] func(event T)

// Bus delivers events of one kind to its subscribers.
// Delivery is synchronous and in subscription order.
type Bus[T any] struct {
	name     string
	handlers []Handler[T]
	lock     *sync.RWMutex
}

// NewBus creates a new bus.
func NewBus[T any](name string) *Bus[T] {
	return &Bus[T]{
		name:     name,
		handlers: make([]Handler[T], 0),
		lock:     new(sync.RWMutex),
	}
}

// Subscribe appends the handler to the subscribers of the bus.
func (b *Bus[T]) Subscribe(handler Handler[T]) *Bus[T] {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.handlers = append(b.handlers, handler)
	return b
}

// Publish delivers the event to all subscribers.
// A panicking handler does not stop delivery to the rest.
func (b *Bus[T]) Publish(event T) {
	b.lock.RLock()
	handlers := make([]Handler[T], len(b.handlers))
	copy(handlers, b.handlers)
	b.lock.RUnlock()

	for i, handler := range handlers {
		b.deliver(i, handler, event)
	}
}

func (b *Bus[T]) deliver(i int, handler Handler[T], event T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("bus", b.name).
				Int("handler", i).
				Interface("panic", r).
				Msg("handler failed")
		}
	}()
	handler(event)
}

// OrderPlaced is published after a limit order is accepted by the exchange.
type OrderPlaced struct {
	Order          model.ActiveOrder
	Recommendation model.Recommendation
}

// OrderError is published when an order operation fails on the exchange.
type OrderError struct {
	Action           string
	Symbol           string
	OrderID          string
	RecommendationID string
	Err              error
}

// Hub groups the buses of the application.
type Hub struct {
	Crosses      *Bus[model.CrossEvent]
	OrdersPlaced *Bus[OrderPlaced]
	OrderErrors  *Bus[OrderError]
}

// NewHub creates the buses for all event kinds.
func NewHub() *Hub {
	return &Hub{
		Crosses:      NewBus[model.CrossEvent]("crosses"),
		OrdersPlaced: NewBus[OrderPlaced]("orders-placed"),
		OrderErrors:  NewBus[OrderError]("order-errors"),
	}
}
