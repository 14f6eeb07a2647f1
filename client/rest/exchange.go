package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Name is the exchange name of the rest gateway.
const Name api.ExchangeName = "gateway"

// Exchange is the exchange gateway over the signed rest api.
type Exchange struct {
	client *Client
}

// NewExchange creates a new exchange gateway.
func NewExchange(client *Client) *Exchange {
	return &Exchange{client: client}
}

func (e *Exchange) Name() api.ExchangeName {
	return Name
}

func (e *Exchange) ticker(ctx context.Context, symbol string) (ticker, error) {
	var result tickersResult
	err := e.client.get(ctx, "/market/tickers", url.Values{
		"category": {categorySpot},
		"symbol":   {symbol},
	}, &result)
	if err != nil {
		return ticker{}, err
	}
	for _, t := range result.List {
		if t.Symbol == symbol {
			return t, nil
		}
	}
	return ticker{}, fmt.Errorf("no ticker for %s: %w", symbol, api.NotFoundErr)
}

func (e *Exchange) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	t, err := e.ticker(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return parse("lastPrice", t.LastPrice)
}

// QuoteVolume returns the 24h turnover of the symbol.
func (e *Exchange) QuoteVolume(ctx context.Context, symbol string) (float64, error) {
	t, err := e.ticker(ctx, model.Pair(symbol))
	if err != nil {
		return 0, err
	}
	return parse("turnover24h", t.Turnover24h)
}

func (e *Exchange) OrderBook(ctx context.Context, symbol string, depth int) (model.OrderBook, error) {
	if depth <= 0 {
		depth = defaultBookSize
	}
	if depth > maxBookDepth {
		depth = maxBookDepth
	}
	var result orderBookResult
	err := e.client.get(ctx, "/market/orderbook", url.Values{
		"category": {categorySpot},
		"symbol":   {symbol},
		"limit":    {strconv.Itoa(depth)},
	}, &result)
	if err != nil {
		return model.OrderBook{}, err
	}
	bids, err := levels(result.Bids)
	if err != nil {
		return model.OrderBook{}, fmt.Errorf("could not parse bids for %s: %w", symbol, err)
	}
	asks, err := levels(result.Asks)
	if err != nil {
		return model.OrderBook{}, fmt.Errorf("could not parse asks for %s: %w", symbol, err)
	}
	return model.OrderBook{
		Symbol: symbol,
		Bids:   bids,
		Asks:   asks,
	}, nil
}

// Balance returns the balance of the coin in the unified account.
// The available amount falls back to the wallet balance if the exchange does not report it.
func (e *Exchange) Balance(ctx context.Context, coin model.Coin) (model.Balance, error) {
	var result walletResult
	err := e.client.get(ctx, "/account/wallet-balance", url.Values{
		"accountType": {accountUnified},
		"coin":        {string(coin)},
	}, &result)
	if err != nil {
		return model.Balance{}, err
	}
	for _, w := range result.List {
		for _, c := range w.Coin {
			if c.Coin != string(coin) {
				continue
			}
			total, err := parse("walletBalance", c.WalletBalance)
			if err != nil {
				return model.Balance{}, err
			}
			available := total
			if c.AvailableToWithdraw != "" {
				available, err = parse("availableToWithdraw", c.AvailableToWithdraw)
				if err != nil {
					return model.Balance{}, err
				}
			}
			return model.Balance{
				Coin:      coin,
				Available: available,
				Total:     total,
			}, nil
		}
	}
	return model.Balance{Coin: coin}, nil
}

func (e *Exchange) OpenOrder(ctx context.Context, order model.LimitOrder) (model.OrderAck, error) {
	request := createOrderRequest{
		Category:    categorySpot,
		Symbol:      order.Symbol,
		Side:        string(order.Side),
		OrderType:   orderTypeLimit,
		Qty:         decimal.NewFromFloat(order.Quantity).String(),
		Price:       decimal.NewFromFloat(order.Price).String(),
		TimeInForce: order.TimeInForce,
	}
	var result createOrderResult
	if err := e.client.post(ctx, "/order/create", request, &result); err != nil {
		return model.OrderAck{}, err
	}
	log.Info().
		Str("order-id", result.OrderID).
		Str("symbol", order.Symbol).
		Str("qty", request.Qty).
		Str("price", request.Price).
		Msg("order created")
	return model.OrderAck{
		OrderID:   result.OrderID,
		Symbol:    order.Symbol,
		Side:      order.Side,
		OrderType: model.Limit,
		Quantity:  order.Quantity,
		Price:     order.Price,
		CreatedAt: e.client.now(),
	}, nil
}

func (e *Exchange) CancelOrder(ctx context.Context, symbol, orderID string) error {
	var result cancelOrderResult
	return e.client.post(ctx, "/order/cancel", cancelOrderRequest{
		Category: categorySpot,
		Symbol:   symbol,
		OrderID:  orderID,
	}, &result)
}

func (e *Exchange) OrderStatus(ctx context.Context, orderID string) (model.OrderState, error) {
	var result realtimeResult
	err := e.client.get(ctx, "/order/realtime", url.Values{
		"category": {categorySpot},
		"orderId":  {orderID},
	}, &result)
	if err != nil {
		return model.OrderState{}, err
	}
	for _, o := range result.List {
		if o.OrderID != orderID {
			continue
		}
		var filled float64
		if o.CumExecQty != "" {
			filled, err = parse("cumExecQty", o.CumExecQty)
			if err != nil {
				return model.OrderState{}, err
			}
		}
		return model.OrderState{
			OrderID: o.OrderID,
			Symbol:  o.Symbol,
			Status:  status(o.OrderStatus),
			Filled:  filled,
		}, nil
	}
	return model.OrderState{}, &api.ExchangeError{Code: orderNotExists, Message: fmt.Sprintf("order %s not exists", orderID)}
}

func status(s string) model.OrderStatus {
	switch s {
	case "New", "Untriggered":
		return model.New
	case "PartiallyFilled":
		return model.PartiallyFilled
	case "Filled":
		return model.Filled
	case "Cancelled", "PartiallyFilledCanceled", "Deactivated":
		return model.Cancelled
	case "Rejected":
		return model.Rejected
	}
	return model.Pending
}

func levels(ll [][]string) ([]model.Level, error) {
	levels := make([]model.Level, 0, len(ll))
	for _, l := range ll {
		if len(l) < 2 {
			return nil, fmt.Errorf("invalid level %v", l)
		}
		price, err := parse("price", l[0])
		if err != nil {
			return nil, err
		}
		size, err := parse("size", l[1])
		if err != nil {
			return nil, err
		}
		levels = append(levels, model.Level{Price: price, Size: size})
	}
	return levels, nil
}

func parse(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s '%s': %w", field, value, err)
	}
	return f, nil
}
