package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drakos74/free-coin-cross/client/local"
	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func golden(fast, slow float64) model.CrossEvent {
	return model.CrossEvent{
		Symbol:    "BTC",
		Exchange:  "binance",
		Type:      model.Golden,
		Time:      time.Now(),
		FastValue: fast,
		SlowValue: slow,
	}
}

func TestEngine_Generate(t *testing.T) {
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	exchange := local.NewExchange().
		WithPrice("BTCUSDT", 100).
		WithBook("BTCUSDT", 99.95, 100.05).
		WithBalance(model.USDT, 1000)

	engine := NewEngine(exchange, DefaultConfig()).WithClock(func() time.Time {
		return now
	})

	event := golden(99, 98)
	rec, err := engine.Generate(context.Background(), event)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "BTC", rec.Symbol)
	assert.Equal(t, "BTCUSDT", rec.OrderSymbol)
	assert.Equal(t, model.Long, rec.Side)
	assert.Equal(t, event, rec.Trigger)
	assert.Equal(t, model.PriceOptions{
		Conservative: 98.00,
		Moderate:     99.95,
		Aggressive:   100.01,
	}, rec.Prices)
	assert.Equal(t, 99.95, rec.DefaultPrice)
	assert.Equal(t, 0.1, rec.Quantity)
	assert.Equal(t, 10.0, rec.EstimatedCost)
	assert.Equal(t, model.RecommendationPending, rec.Status)
	assert.Equal(t, now, rec.CreatedAt)
	assert.Equal(t, now.Add(10*time.Minute), rec.ExpiresAt)
	// strength ~1.02% maps to 50 + 10.2
	assert.Equal(t, 60, rec.Confidence)
	assert.Equal(t, 0.8, rec.Probability.Moderate)
}

func TestEngine_GenerateSizing(t *testing.T) {

	type test struct {
		balance float64
		percent float64
		min     float64
		err     error
	}

	tests := map[string]test{
		"exactly-minimum": {
			balance: 1000,
			percent: 1,
			min:     10,
		},
		"below-minimum": {
			balance: 999,
			percent: 1,
			min:     10,
			err:     api.InsufficientBalanceErr,
		},
		"larger-position": {
			balance: 500,
			percent: 5,
			min:     10,
		},
		"fractional-percent-below-minimum": {
			balance: 1000,
			percent: 0.7,
			min:     7,
			err:     api.InsufficientBalanceErr,
		},
		"empty-account": {
			balance: 0,
			percent: 1,
			min:     10,
			err:     api.InsufficientBalanceErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exchange := local.NewExchange().
				WithPrice("BTCUSDT", 100).
				WithBalance(model.USDT, tt.balance)
			engine := NewEngine(exchange, Config{
				PositionSizePercent: tt.percent,
				MinTradeBalance:     tt.min,
			})
			rec, err := engine.Generate(context.Background(), golden(101, 100))
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.Empty(t, rec.ID)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, rec.ID)
		})
	}
}

func TestEngine_GenerateDeathCross(t *testing.T) {
	engine := NewEngine(local.NewMockExchange(), DefaultConfig())
	event := golden(97, 98)
	event.Type = model.Death
	_, err := engine.Generate(context.Background(), event)
	assert.True(t, errors.Is(err, api.ValidationErr))
}

func TestEngine_GenerateGatewayFailure(t *testing.T) {

	type test struct {
		setup func(m *local.MockExchange)
		err   error
	}

	tests := map[string]test{
		"price": {
			setup: func(m *local.MockExchange) {
				m.On("CurrentPrice", mock.Anything, "ETHUSDT").Return(0.0, api.NetworkErr)
			},
			err: api.NetworkErr,
		},
		"book": {
			setup: func(m *local.MockExchange) {
				m.On("CurrentPrice", mock.Anything, "ETHUSDT").Return(2000.0, nil)
				m.On("OrderBook", mock.Anything, "ETHUSDT", 1).Return(model.OrderBook{}, &api.ExchangeError{Code: 10006, Message: "rate limit"})
			},
		},
		"balance": {
			setup: func(m *local.MockExchange) {
				m.On("CurrentPrice", mock.Anything, "ETHUSDT").Return(2000.0, nil)
				m.On("OrderBook", mock.Anything, "ETHUSDT", 1).Return(model.OrderBook{}, nil)
				m.On("Balance", mock.Anything, model.USDT).Return(model.Balance{}, api.NetworkErr)
			},
			err: api.NetworkErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exchange := local.NewMockExchange()
			tt.setup(exchange)
			event := golden(101, 100)
			event.Symbol = "ETH"
			rec, err := NewEngine(exchange, DefaultConfig()).Generate(context.Background(), event)
			require.Error(t, err)
			assert.Empty(t, rec.ID)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
			} else {
				_, ok := api.IsExchangeError(err)
				assert.True(t, ok)
			}
			exchange.AssertExpectations(t)
		})
	}
}

func TestPrices(t *testing.T) {

	type test struct {
		price  float64
		slow   float64
		book   model.OrderBook
		prices model.PriceOptions
	}

	tests := map[string]test{
		"example": {
			price: 100,
			slow:  98,
			book:  model.OrderBook{Bids: []model.Level{{Price: 99.95}}},
			prices: model.PriceOptions{
				Conservative: 98,
				Moderate:     99.95,
				Aggressive:   100.01,
			},
		},
		"slow-above-price": {
			price: 100,
			slow:  120,
			book:  model.OrderBook{Bids: []model.Level{{Price: 99.5}}},
			prices: model.PriceOptions{
				Conservative: 99.8,
				Moderate:     99.95,
				Aggressive:   100.01,
			},
		},
		"bid-above-moderate": {
			price: 100,
			slow:  98,
			book:  model.OrderBook{Bids: []model.Level{{Price: 99.99}}},
			prices: model.PriceOptions{
				Conservative: 98,
				Moderate:     99.99,
				Aggressive:   100.01,
			},
		},
		"empty-book": {
			price: 100,
			slow:  98,
			prices: model.PriceOptions{
				Conservative: 98,
				Moderate:     99.95,
				Aggressive:   100.01,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.prices, Prices(tt.price, tt.slow, tt.book))
		})
	}
}

func TestQuantity(t *testing.T) {

	type test struct {
		usd      float64
		price    float64
		quantity float64
	}

	tests := map[string]test{
		"near-whole":     {usd: 10, price: 3.3333, quantity: 3.0},
		"third":          {usd: 1, price: 3, quantity: 0.333},
		"book-price":     {usd: 10, price: 99.95, quantity: 0.1},
		"zero-price":     {usd: 10, price: 0, quantity: 0},
		"sub-dollar":     {usd: 10.02, price: 0.1, quantity: 100.199},
		"float-floor":    {usd: 10.01, price: 2.5, quantity: 4.003},
		"just-below-int": {usd: 10.01, price: 0.07, quantity: 142.999},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.quantity, Quantity(tt.usd, tt.price))
		})
	}
}

func TestConfidence(t *testing.T) {

	type test struct {
		strength   float64
		confidence int
	}

	tests := map[string]test{
		"weak":     {strength: 0.001, confidence: 60},
		"mid":      {strength: 0.0234, confidence: 73},
		"strong":   {strength: 0.1, confidence: 95},
		"negative": {strength: -0.05, confidence: 60},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.confidence, Confidence(tt.strength))
		})
	}
}

func TestProbability(t *testing.T) {
	p := Probability(0.001)
	assert.InDelta(t, 0.8, p.Conservative, 1e-9)
	assert.InDelta(t, 0.6, p.Moderate, 1e-9)
	assert.InDelta(t, 0.9, p.Aggressive, 1e-9)

	p = Probability(0.5)
	assert.Equal(t, model.Probabilities{Conservative: 0.9, Moderate: 0.8, Aggressive: 0.95}, p)
}
