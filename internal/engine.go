package coin

import (
	"context"
	"time"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/cross"
	"github.com/drakos74/free-coin-cross/internal/events"
	"github.com/drakos74/free-coin-cross/internal/metrics"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/drakos74/free-coin-cross/internal/notify"
	"github.com/drakos74/free-coin-cross/internal/recommend"
	cointime "github.com/drakos74/free-coin-cross/internal/time"
	"github.com/drakos74/free-coin-cross/internal/trader"
	"github.com/drakos74/free-coin-cross/internal/volume"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	sweepInterval  = time.Minute
	maxPollers     = 8
	defaultPoll    = 5 * time.Minute
	defaultRefresh = time.Minute
)

// Config defines the signal windows and the schedule of the engine.
type Config struct {
	Fast      int
	Slow      int
	Poll      time.Duration
	Refresh   time.Duration
	AutoTrade bool
	Volume    volume.Config
	Recommend recommend.Config
}

type source struct {
	api.VolumeSource
	symbols []string
}

// Engine polls the volume sources and turns the detected crosses into notifications,
// recommendations and, if enabled, orders.
type Engine struct {
	config      Config
	sources     []source
	store       *volume.Store
	detector    *cross.Detector
	ledger      *notify.Ledger
	recommender *recommend.Engine
	pool        *recommend.Pool
	executor    *trader.Executor
	hub         *events.Hub
	now         func() time.Time
}

// NewEngine creates a new engine trading on the given exchange.
func NewEngine(config Config, exchange api.Exchange, hub *events.Hub) *Engine {
	if config.Poll <= 0 {
		config.Poll = defaultPoll
	}
	if config.Refresh <= 0 {
		config.Refresh = defaultRefresh
	}
	pool := recommend.NewPool()
	return &Engine{
		config:      config,
		sources:     make([]source, 0),
		store:       volume.NewStore(config.Volume),
		detector:    cross.NewDetector(),
		ledger:      notify.NewLedger(),
		recommender: recommend.NewEngine(exchange, config.Recommend),
		pool:        pool,
		executor:    trader.NewExecutor(exchange, pool, hub),
		hub:         hub,
		now:         time.Now,
	}
}

// AddSource adds the symbols to poll from the volume source.
func (e *Engine) AddSource(vs api.VolumeSource, symbols ...string) *Engine {
	e.sources = append(e.sources, source{
		VolumeSource: vs,
		symbols:      symbols,
	})
	return e
}

// WithClock overrides the clock of the engine and its components.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	e.ledger.WithClock(now)
	e.recommender.WithClock(now)
	e.executor.WithClock(now)
	return e
}

// Run starts the schedules of the engine. They stop when the context is done.
func (e *Engine) Run(ctx context.Context) {
	stop := ctx.Done()
	cointime.Execute(stop, "poll", e.config.Poll, func() error {
		return e.Poll(ctx)
	}, func() {})
	cointime.Execute(stop, "cleanup", notify.CleanupInterval, func() error {
		e.ledger.Cleanup(e.now())
		return nil
	}, func() {})
	cointime.Execute(stop, "sweep", sweepInterval, func() error {
		e.pool.Sweep(e.now())
		return nil
	}, func() {})
	cointime.Execute(stop, "refresh", e.config.Refresh, func() error {
		e.executor.Refresh(ctx)
		return nil
	}, func() {})
	log.Info().
		Int("sources", len(e.sources)).
		Int("fast", e.config.Fast).
		Int("slow", e.config.Slow).
		Bool("auto-trade", e.config.AutoTrade).
		Msg("engine started")
}

// Poll samples all symbols of all sources once.
// Failures of single symbols are logged and do not stop the rest.
func (e *Engine) Poll(ctx context.Context) error {
	now := e.now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPollers)
	for _, s := range e.sources {
		s := s
		for _, symbol := range s.symbols {
			symbol := symbol
			g.Go(func() error {
				e.observe(ctx, s, symbol, now)
				return nil
			})
		}
	}
	return g.Wait()
}

func (e *Engine) observe(ctx context.Context, s source, symbol string, now time.Time) {
	exchange := string(s.Name())
	qv, err := s.QuoteVolume(ctx, symbol)
	if err != nil {
		log.Error().Err(err).
			Str("exchange", exchange).
			Str("symbol", symbol).
			Msg("could not get volume")
		metrics.Observer.Volume(exchange, symbol, "error")
		return
	}
	e.Observe(ctx, exchange, symbol, qv, now)
}

// Observe records the quote volume and dispatches the crosses it causes.
func (e *Engine) Observe(ctx context.Context, exchange, symbol string, qv float64, now time.Time) []model.CrossEvent {
	if !e.store.Record(exchange, symbol, qv, now) {
		metrics.Observer.Volume(exchange, symbol, "skipped")
		return nil
	}
	metrics.Observer.Volume(exchange, symbol, "ok")

	key := model.NewKey(exchange, symbol)
	point, ok := e.store.Latest(key.Exchange, key.Symbol, e.config.Fast, e.config.Slow)
	if !ok {
		return nil
	}
	crosses := e.detector.Observe(cross.NewPoint(key, point))
	for _, event := range crosses {
		e.dispatch(ctx, event)
	}
	return crosses
}

func (e *Engine) dispatch(ctx context.Context, event model.CrossEvent) {
	metrics.Observer.Cross(event.Exchange, event.Symbol, string(event.Type))
	e.ledger.Add(event)
	e.hub.Crosses.Publish(event)

	if event.Type != model.Golden {
		return
	}

	rec, err := e.recommender.Generate(ctx, event)
	if err != nil {
		log.Error().Err(err).
			Str("exchange", event.Exchange).
			Str("symbol", event.Symbol).
			Msg("could not create recommendation")
		return
	}
	e.pool.Add(rec)

	if !e.config.AutoTrade {
		return
	}
	result, err := e.executor.ExecuteByID(ctx, rec.ID, nil)
	if err != nil {
		log.Error().Err(err).
			Str("id", rec.ID).
			Str("symbol", rec.OrderSymbol).
			Msg("could not auto trade")
		return
	}
	log.Info().
		Str("id", rec.ID).
		Bool("success", result.Success).
		Str("order-id", result.OrderID).
		Msg("auto trade")
}
