package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPair(t *testing.T) {

	type test struct {
		symbol string
		pair   string
	}

	tests := map[string]test{
		"mapped":     {symbol: "BTC", pair: "BTCUSDT"},
		"lower-case": {symbol: "eth", pair: "ETHUSDT"},
		"unmapped":   {symbol: "ADA", pair: "ADAUSDT"},
		"pair":       {symbol: "ADAUSDT", pair: "ADAUSDT"},
		"quote":      {symbol: "USDT", pair: "USDTUSDT"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.pair, Pair(tt.symbol))
		})
	}
}

func TestKey(t *testing.T) {
	key := NewKey("Binance", "btc")
	assert.Equal(t, Key{Exchange: "binance", Symbol: "BTC"}, key)
	assert.Equal(t, "binance-BTC", key.String())
}

func TestCrossEvent(t *testing.T) {
	at := time.UnixMilli(1614600000123)
	event := CrossEvent{
		Symbol:    "BTC",
		Exchange:  "binance",
		Type:      Golden,
		Time:      at,
		FastValue: 102,
		SlowValue: 100,
	}
	assert.Equal(t, "binance-BTC-1614600000123", event.ID())
	assert.Equal(t, NewKey("binance", "BTC"), event.Key())
	assert.InDelta(t, 0.02, event.Strength(), 1e-9)

	event.SlowValue = 0
	assert.Equal(t, 0.0, event.Strength())
}

func TestRecommendation_Expired(t *testing.T) {
	created := time.Now()
	rec := Recommendation{
		CreatedAt: created,
		ExpiresAt: created.Add(RecommendationTTL),
	}
	assert.False(t, rec.Expired(created.Add(599999*time.Millisecond)))
	assert.False(t, rec.Expired(created.Add(RecommendationTTL)))
	assert.True(t, rec.Expired(created.Add(600001*time.Millisecond)))
}

func TestOrderStatus_Live(t *testing.T) {
	for _, s := range []OrderStatus{Pending, New, PartiallyFilled} {
		assert.True(t, s.Live(), s)
	}
	for _, s := range []OrderStatus{Filled, Cancelled, Rejected} {
		assert.False(t, s.Live(), s)
	}
}

func TestOrderBook(t *testing.T) {
	book := OrderBook{}
	_, ok := book.BestBid()
	assert.False(t, ok)

	book.Bids = []Level{{Price: 99.5, Size: 1}, {Price: 99, Size: 2}}
	book.Asks = []Level{{Price: 100.5, Size: 1}}
	bid, ok := book.BestBid()
	assert.True(t, ok)
	assert.Equal(t, 99.5, bid)
	ask, ok := book.BestAsk()
	assert.True(t, ok)
	assert.Equal(t, 100.5, ask)
}

func TestBalance_Covers(t *testing.T) {
	b := Balance{Coin: USDT, Available: 10}
	assert.True(t, b.Covers(10))
	assert.False(t, b.Covers(10.01))
}
