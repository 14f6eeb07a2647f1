package recommend

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/metrics"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	conservativeDiscount = 0.998
	moderateDiscount     = 0.9995
	aggressivePremium    = 1.0001

	minConfidence = 60
	maxConfidence = 95
)

// Config defines the sizing parameters of the recommendations.
type Config struct {
	PositionSizePercent float64 `yaml:"position_size_percent"`
	MinTradeBalance     float64 `yaml:"min_trade_balance"`
	BookDepth           int     `yaml:"book_depth"`
}

// DefaultConfig returns the default sizing of 1% with a minimum trade of 10 USDT.
func DefaultConfig() Config {
	return Config{
		PositionSizePercent: 1.0,
		MinTradeBalance:     10,
		BookDepth:           1,
	}
}

// Engine turns golden cross events into priced limit long recommendations.
type Engine struct {
	config   Config
	exchange api.Exchange
	now      func() time.Time
}

// NewEngine creates a new recommendation engine on top of the given exchange.
func NewEngine(exchange api.Exchange, config Config) *Engine {
	if config.BookDepth <= 0 {
		config.BookDepth = 1
	}
	return &Engine{
		config:   config,
		exchange: exchange,
		now:      time.Now,
	}
}

// WithClock overrides the clock of the engine.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Generate creates a recommendation for the given golden cross.
func (e *Engine) Generate(ctx context.Context, event model.CrossEvent) (model.Recommendation, error) {
	if event.Type != model.Golden {
		return model.Recommendation{}, fmt.Errorf("cannot recommend on %s cross: %w", event.Type, api.ValidationErr)
	}

	symbol := model.Pair(event.Symbol)

	price, err := e.exchange.CurrentPrice(ctx, symbol)
	if err != nil {
		return model.Recommendation{}, fmt.Errorf("could not get price for %s: %w", symbol, err)
	}
	book, err := e.exchange.OrderBook(ctx, symbol, e.config.BookDepth)
	if err != nil {
		return model.Recommendation{}, fmt.Errorf("could not get order book for %s: %w", symbol, err)
	}
	balance, err := e.exchange.Balance(ctx, model.USDT)
	if err != nil {
		return model.Recommendation{}, fmt.Errorf("could not get balance: %w", err)
	}

	prices := Prices(price, event.SlowValue, book)
	usd := balance.Available * (e.config.PositionSizePercent / 100)
	if usd < e.config.MinTradeBalance {
		log.Warn().
			Str("symbol", symbol).
			Float64("available", balance.Available).
			Float64("amount", usd).
			Float64("min", e.config.MinTradeBalance).
			Msg("position below minimum trade size")
		metrics.Observer.Recommendation(symbol, "insufficient-balance")
		return model.Recommendation{}, fmt.Errorf("position of %.2f below minimum %.2f: %w", usd, e.config.MinTradeBalance, api.InsufficientBalanceErr)
	}
	quantity := Quantity(usd, prices.Moderate)

	now := e.now()
	rec := model.Recommendation{
		ID:            uuid.New().String(),
		Symbol:        event.Symbol,
		OrderSymbol:   symbol,
		Side:          model.Long,
		Trigger:       event,
		Prices:        prices,
		Probability:   Probability(event.Strength()),
		Quantity:      quantity,
		EstimatedCost: Cost(quantity, prices.Moderate),
		DefaultPrice:  prices.Moderate,
		Confidence:    Confidence(event.Strength()),
		CreatedAt:     now,
		ExpiresAt:     now.Add(model.RecommendationTTL),
		Status:        model.RecommendationPending,
	}

	log.Info().
		Str("id", rec.ID).
		Str("symbol", symbol).
		Float64("price", price).
		Float64("moderate", prices.Moderate).
		Float64("quantity", quantity).
		Int("confidence", rec.Confidence).
		Msg("recommendation")
	metrics.Observer.Recommendation(symbol, string(model.RecommendationPending))
	return rec, nil
}

// Prices derives the limit price options from the current price, the slow average and the book.
func Prices(price, slow float64, book model.OrderBook) model.PriceOptions {
	bid, _ := book.BestBid()
	return model.PriceOptions{
		Conservative: round(math.Min(slow, price*conservativeDiscount)),
		Moderate:     round(math.Max(bid, price*moderateDiscount)),
		Aggressive:   round(price * aggressivePremium),
	}
}

// Probability estimates the fill probabilities from the cross strength.
func Probability(strength float64) model.Probabilities {
	m := math.Min(0.8, strength*100)
	return model.Probabilities{
		Conservative: math.Min(0.9, 0.7+m),
		Moderate:     math.Min(0.8, 0.5+m),
		Aggressive:   math.Min(0.95, 0.8+m),
	}
}

// Confidence maps the cross strength to a score between 60 and 95.
func Confidence(strength float64) int {
	c := int(math.Round(50 + strength*100*10))
	if c < minConfidence {
		return minConfidence
	}
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

// Quantity returns the amount bought for usd at the given price, truncated to 3 decimals.
func Quantity(usd, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Floor(usd/price*1000) / 1000
}

// Cost returns the quote amount needed for the given quantity at price, rounded to 2 decimals.
func Cost(quantity, price float64) float64 {
	return decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(price)).
		Round(2).
		InexactFloat64()
}

func round(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
