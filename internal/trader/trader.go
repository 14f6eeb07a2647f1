package trader

import (
	"sort"
	"strings"
	"sync"

	"github.com/drakos74/free-coin-cross/internal/metrics"
	"github.com/drakos74/free-coin-cross/internal/model"
)

// book is the table of the orders we consider live on the exchange, keyed by order id.
type book struct {
	orders map[string]model.ActiveOrder
	lock   *sync.RWMutex
}

func newBook() *book {
	return &book{
		orders: make(map[string]model.ActiveOrder),
		lock:   new(sync.RWMutex),
	}
}

func (b *book) add(order model.ActiveOrder) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.orders[order.OrderID] = order
	metrics.Observer.ActiveOrders(len(b.orders))
}

func (b *book) get(id string) (model.ActiveOrder, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	order, ok := b.orders[id]
	return order, ok
}

// update replaces the order only if it is still tracked.
func (b *book) update(order model.ActiveOrder) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	if _, ok := b.orders[order.OrderID]; !ok {
		return false
	}
	b.orders[order.OrderID] = order
	return true
}

func (b *book) remove(id string) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	if _, ok := b.orders[id]; !ok {
		return false
	}
	delete(b.orders, id)
	metrics.Observer.ActiveOrders(len(b.orders))
	return true
}

// getAll returns the orders matching the filter, oldest first.
func (b *book) getAll(match func(order model.ActiveOrder) bool) []model.ActiveOrder {
	b.lock.RLock()
	defer b.lock.RUnlock()
	orders := make([]model.ActiveOrder, 0)
	for _, order := range b.orders {
		if match(order) {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].OrderID < orders[j].OrderID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders
}

func all(order model.ActiveOrder) bool {
	return true
}

// bySymbol matches both the signal symbol and the exchange order symbol.
func bySymbol(symbol string) func(order model.ActiveOrder) bool {
	pair := model.Pair(symbol)
	return func(order model.ActiveOrder) bool {
		return strings.EqualFold(order.Symbol, symbol) || order.Symbol == pair
	}
}
