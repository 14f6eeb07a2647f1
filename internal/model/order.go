package model

import "time"

// Side defines the direction of an order or recommendation.
type Side string

const (
	// Long opens a position expecting the price to go up.
	Long Side = "LONG"
	// Buy is the exchange side of a long entry.
	Buy Side = "Buy"
	// Sell is the exchange side of a long exit.
	Sell Side = "Sell"
)

// OrderType defines the Price conditions for an order i.e. market Price, limit Price etc ...
type OrderType string

const (
	// Limit defines a limit order
	Limit OrderType = "LIMIT"
	// Market defines a market order
	Market OrderType = "MARKET"
)

// OrderStatus is the lifecycle state of an order as tracked by us or reported by the exchange.
type OrderStatus string

const (
	Pending         OrderStatus = "PENDING"
	New             OrderStatus = "NEW"
	PartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	Filled          OrderStatus = "FILLED"
	Cancelled       OrderStatus = "CANCELLED"
	Rejected        OrderStatus = "REJECTED"
)

// Live returns true if the exchange may still fill the order.
func (s OrderStatus) Live() bool {
	switch s {
	case Filled, Cancelled, Rejected:
		return false
	}
	return true
}

// LimitOrder is the request for placing a limit order.
type LimitOrder struct {
	Symbol      string  `json:"symbol"`
	Side        Side    `json:"side"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	TimeInForce string  `json:"time_in_force"`
}

// NewLimitBuy creates a good-till-cancelled limit buy.
func NewLimitBuy(symbol string, quantity, price float64) LimitOrder {
	return LimitOrder{
		Symbol:      symbol,
		Side:        Buy,
		Quantity:    quantity,
		Price:       price,
		TimeInForce: "GTC",
	}
}

// OrderAck is the exchange acknowledgement of a placed order.
type OrderAck struct {
	OrderID   string    `json:"order_id"`
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"side"`
	OrderType OrderType `json:"order_type"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderState is a status snapshot of an order on the exchange.
type OrderState struct {
	OrderID string      `json:"order_id"`
	Symbol  string      `json:"symbol"`
	Status  OrderStatus `json:"status"`
	Filled  float64     `json:"filled"`
}

// ActiveOrder is an order we know to be live on the exchange.
type ActiveOrder struct {
	OrderID          string      `json:"orderId"`
	Symbol           string      `json:"symbol"`
	Side             Side        `json:"side"`
	OrderType        OrderType   `json:"orderType"`
	Quantity         float64     `json:"quantity"`
	LimitPrice       float64     `json:"limitPrice"`
	Status           OrderStatus `json:"status"`
	RecommendationID string      `json:"recommendationId"`
	CreatedAt        time.Time   `json:"createdAt"`
	LastChecked      time.Time   `json:"lastChecked"`
}

// ExecutionResult is the outcome of executing a recommendation.
// Exchange failures during placement are reported here instead of as an error.
type ExecutionResult struct {
	Success          bool        `json:"success"`
	OrderID          string      `json:"orderId,omitempty"`
	Symbol           string      `json:"symbol"`
	Quantity         float64     `json:"quantity,omitempty"`
	LimitPrice       float64     `json:"limitPrice,omitempty"`
	Status           OrderStatus `json:"status,omitempty"`
	RecommendationID string      `json:"recommendationId"`
	Error            string      `json:"error,omitempty"`
}
