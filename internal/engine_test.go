package coin

import (
	"context"
	"testing"
	"time"

	"github.com/drakos74/free-coin-cross/client/local"
	"github.com/drakos74/free-coin-cross/internal/events"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/drakos74/free-coin-cross/internal/recommend"
	"github.com/drakos74/free-coin-cross/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

type clock struct {
	now time.Time
}

func (c *clock) get() time.Time {
	return c.now
}

func (c *clock) tick(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func newTestEngine(autoTrade bool) (*Engine, *local.Exchange, *events.Hub, *clock) {
	exchange := local.NewExchange().
		WithPrice("BTCUSDT", 100).
		WithBook("BTCUSDT", 99.95, 100.05).
		WithBalance(model.USDT, 1000)
	hub := events.NewHub()
	c := &clock{now: start}
	engine := NewEngine(Config{
		Fast:      2,
		Slow:      3,
		AutoTrade: autoTrade,
		Volume:    volume.DefaultConfig(),
		Recommend: recommend.DefaultConfig(),
	}, exchange, hub).WithClock(c.get)
	return engine, exchange, hub, c
}

// feed observes the volumes one minute apart and returns the crosses of each step.
func feed(engine *Engine, c *clock, symbol string, volumes ...float64) [][]model.CrossEvent {
	crosses := make([][]model.CrossEvent, len(volumes))
	for i, v := range volumes {
		crosses[i] = engine.Observe(context.Background(), "binance", symbol, v, c.tick(time.Minute))
	}
	return crosses
}

func TestEngine_Observe(t *testing.T) {
	engine, _, hub, c := newTestEngine(false)

	published := make([]model.CrossEvent, 0)
	hub.Crosses.Subscribe(func(event model.CrossEvent) {
		published = append(published, event)
	})

	crosses := feed(engine, c, "BTC", 10, 10, 10, 20)
	for i := 0; i < 3; i++ {
		assert.Empty(t, crosses[i])
	}
	require.Len(t, crosses[3], 1)
	golden := crosses[3][0]
	assert.Equal(t, model.Golden, golden.Type)
	assert.Equal(t, "BTC", golden.Symbol)
	assert.Equal(t, "binance", golden.Exchange)
	assert.Equal(t, 15.0, golden.FastValue)

	recs := engine.pool.List()
	require.Len(t, recs, 1)
	assert.Equal(t, "BTCUSDT", recs[0].OrderSymbol)
	assert.Equal(t, golden, recs[0].Trigger)
	assert.Empty(t, engine.executor.ListActive())

	crosses = feed(engine, c, "BTC", 0, 0)
	assert.Empty(t, crosses[0])
	require.Len(t, crosses[1], 1)
	assert.Equal(t, model.Death, crosses[1][0].Type)

	// death crosses only notify
	assert.Len(t, engine.pool.List(), 1)
	assert.Equal(t, model.NotificationStats{
		Total:         2,
		Unnotified:    2,
		GoldenCrosses: 1,
		DeathCrosses:  1,
	}, engine.ledger.Stats())
	assert.Len(t, published, 2)
}

func TestEngine_ObserveTooFrequent(t *testing.T) {
	engine, _, _, c := newTestEngine(false)
	feed(engine, c, "BTC", 10, 10, 10)

	// a sample within the minimum interval is ignored
	crosses := engine.Observe(context.Background(), "binance", "BTC", 1000, c.tick(time.Second))
	assert.Empty(t, crosses)
	assert.Len(t, engine.store.History("binance", "BTC"), 3)
}

func TestEngine_AutoTrade(t *testing.T) {
	engine, exchange, _, c := newTestEngine(true)

	feed(engine, c, "BTC", 10, 10, 10, 20)

	assert.Empty(t, engine.pool.List())
	orders := engine.executor.ListActive()
	require.Len(t, orders, 1)
	assert.Equal(t, 99.95, orders[0].LimitPrice)
	assert.Equal(t, 0.1, orders[0].Quantity)
	assert.Len(t, exchange.Orders(), 1)
}

func TestEngine_AutoTradeInsufficientBalance(t *testing.T) {
	engine, exchange, _, c := newTestEngine(true)
	exchange.WithBalance(model.USDT, 500)

	feed(engine, c, "BTC", 10, 10, 10, 20)

	assert.Empty(t, engine.pool.List())
	assert.Empty(t, engine.executor.ListActive())
	assert.Equal(t, 1, engine.ledger.Stats().GoldenCrosses)
}

func TestEngine_Poll(t *testing.T) {
	engine, _, _, c := newTestEngine(false)
	source := local.NewVolumeSource("binance").
		WithVolumes("BTC", 10, 10, 10, 20)
	// ETH has no volumes and fails on every poll
	engine.AddSource(source, "BTC", "ETH")

	for i := 0; i < 4; i++ {
		c.tick(time.Minute)
		require.NoError(t, engine.Poll(context.Background()))
	}

	assert.Len(t, engine.store.History("binance", "BTC"), 4)
	assert.Empty(t, engine.store.History("binance", "ETH"))
	assert.Len(t, engine.ledger.Unnotified(), 1)
	assert.Len(t, engine.pool.List(), 1)
}

func TestEngine_Run(t *testing.T) {
	engine, _, _, _ := newTestEngine(false)
	engine.config.Poll = 5 * time.Millisecond
	source := local.NewVolumeSource("binance").WithVolumes("BTC", 10)
	engine.AddSource(source, "BTC")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Run(ctx)

	assert.Eventually(t, func() bool {
		return len(engine.store.History("binance", "BTC")) == 1
	}, time.Second, time.Millisecond)
}
