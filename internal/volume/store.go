package volume

import (
	"sort"
	"sync"
	"time"

	"github.com/drakos74/free-coin-cross/internal/buffer"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// Config defines the sampling and retention of the volume history.
type Config struct {
	// MinInterval is the minimum gap between two stored samples of the same series.
	MinInterval time.Duration `yaml:"min_interval"`
	// Retention is the maximum age of a stored sample.
	Retention time.Duration `yaml:"retention"`
	// MaxSamples caps the number of samples per series.
	MaxSamples int `yaml:"max_samples"`
}

// DefaultConfig returns the default history settings.
func DefaultConfig() Config {
	return Config{
		MinInterval: time.Minute,
		Retention:   24 * time.Hour,
		MaxSamples:  1440,
	}
}

// Store keeps a bounded quote volume history per exchange and symbol.
type Store struct {
	config Config
	series map[model.Key]*buffer.Series
	lock   *sync.RWMutex
}

// NewStore creates a new volume history store.
func NewStore(config Config) *Store {
	return &Store{
		config: config,
		series: make(map[model.Key]*buffer.Series),
		lock:   new(sync.RWMutex),
	}
}

// Record stores the quote volume for the given series at the given time.
// Calls closer than the minimum interval to the last sample, or older than it, are ignored.
// It returns true if the sample was stored.
func (s *Store) Record(exchange, symbol string, quoteVolume float64, now time.Time) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	key := model.NewKey(exchange, symbol)
	series, ok := s.series[key]
	if !ok {
		series = buffer.NewSeries(s.config.MaxSamples)
		s.series[key] = series
	}

	if last, ok := series.Last(); ok && now.Sub(last.Time) < s.config.MinInterval {
		log.Trace().
			Str("key", key.String()).
			Time("last", last.Time).
			Time("now", now).
			Msg("skipping sample")
		return false
	}

	series.Push(model.VolumeSample{
		Time:        now,
		QuoteVolume: quoteVolume,
	})
	if s.config.Retention > 0 {
		if dropped := series.PruneBefore(now.Add(-1 * s.config.Retention)); dropped > 0 {
			log.Debug().
				Str("key", key.String()).
				Int("dropped", dropped).
				Msg("pruned samples")
		}
	}
	return true
}

// MovingAverage returns the mean of the last window samples of the series.
// It returns false if there are fewer than window samples.
func (s *Store) MovingAverage(exchange, symbol string, window int) (float64, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	series, ok := s.series[model.NewKey(exchange, symbol)]
	if !ok {
		return 0, false
	}
	values, ok := series.Tail(window)
	if !ok {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// History returns the retained samples of the series, oldest first.
func (s *Store) History(exchange, symbol string) []model.VolumeSample {
	s.lock.RLock()
	defer s.lock.RUnlock()

	series, ok := s.series[model.NewKey(exchange, symbol)]
	if !ok {
		return []model.VolumeSample{}
	}
	return series.Get()
}

// Series projects the retained samples into moving average points for the given windows.
func (s *Store) Series(exchange, symbol string, fast, slow int) []model.MovingAveragePoint {
	samples := s.History(exchange, symbol)
	values := make([]float64, len(samples))
	for i, sample := range samples {
		values[i] = sample.QuoteVolume
	}
	points := make([]model.MovingAveragePoint, len(samples))
	for i, sample := range samples {
		points[i] = model.MovingAveragePoint{
			Time:  sample.Time,
			Value: sample.QuoteVolume,
			Fast:  mean(values[:i+1], fast),
			Slow:  mean(values[:i+1], slow),
		}
	}
	return points
}

// Latest returns the moving average point of the most recent sample.
func (s *Store) Latest(exchange, symbol string, fast, slow int) (model.MovingAveragePoint, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	series, ok := s.series[model.NewKey(exchange, symbol)]
	if !ok {
		return model.MovingAveragePoint{}, false
	}
	last, ok := series.Last()
	if !ok {
		return model.MovingAveragePoint{}, false
	}
	point := model.MovingAveragePoint{
		Time:  last.Time,
		Value: last.QuoteVolume,
	}
	if values, ok := series.Tail(fast); ok {
		m := stat.Mean(values, nil)
		point.Fast = &m
	}
	if values, ok := series.Tail(slow); ok {
		m := stat.Mean(values, nil)
		point.Slow = &m
	}
	return point, true
}

// Keys returns all tracked series keys.
func (s *Store) Keys() []model.Key {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]model.Key, 0, len(s.series))
	for k := range s.series {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

func mean(values []float64, window int) *float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	m := stat.Mean(values[len(values)-window:], nil)
	return &m
}
