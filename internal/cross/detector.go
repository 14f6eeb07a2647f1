package cross

import (
	"math"
	"sync"
	"time"

	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
)

// Point is a pair of moving averages of a series at a point in time.
// Missing averages are nil.
type Point struct {
	Key  model.Key
	Time time.Time
	Fast *float64
	Slow *float64
}

// NewPoint creates a detector point from a moving average point of the given series.
func NewPoint(key model.Key, p model.MovingAveragePoint) Point {
	return Point{
		Key:  key,
		Time: p.Time,
		Fast: p.Fast,
		Slow: p.Slow,
	}
}

func (p Point) values() (fast, slow float64, ok bool) {
	if p.Fast == nil || p.Slow == nil {
		return 0, 0, false
	}
	fast, slow = *p.Fast, *p.Slow
	if math.IsNaN(fast) || math.IsNaN(slow) || math.IsInf(fast, 0) || math.IsInf(slow, 0) {
		return 0, 0, false
	}
	return fast, slow, true
}

type state struct {
	count    int
	previous Point
}

// Detector emits golden and death crosses from a time ordered sequence of moving average pairs.
// It keeps only the previous point per series.
type Detector struct {
	states map[model.Key]*state
	lock   *sync.Mutex
}

// NewDetector creates a new cross detector.
func NewDetector() *Detector {
	return &Detector{
		states: make(map[model.Key]*state),
		lock:   new(sync.Mutex),
	}
}

// Observe evaluates the point against the previous one of the same series.
// Points must arrive in non-decreasing time order per series.
// Missing or malformed averages never produce an event.
func (d *Detector) Observe(point Point) []model.CrossEvent {
	d.lock.Lock()
	defer d.lock.Unlock()

	s, ok := d.states[point.Key]
	if !ok {
		s = &state{}
		d.states[point.Key] = s
	}
	previous := s.previous
	s.previous = point
	s.count++

	if s.count < 2 {
		return nil
	}

	fast, slow, ok := point.values()
	if !ok {
		return nil
	}
	prevFast, prevSlow, ok := previous.values()
	if !ok {
		return nil
	}

	events := make([]model.CrossEvent, 0)
	if prevFast <= prevSlow && fast > slow {
		events = append(events, newEvent(model.Golden, point, fast, slow, prevFast, prevSlow))
	}
	if prevFast >= prevSlow && fast < slow {
		events = append(events, newEvent(model.Death, point, fast, slow, prevFast, prevSlow))
	}
	for _, e := range events {
		log.Info().
			Str("key", point.Key.String()).
			Str("type", string(e.Type)).
			Float64("fast", fast).
			Float64("slow", slow).
			Float64("prev-fast", prevFast).
			Float64("prev-slow", prevSlow).
			Msg("cross detected")
	}
	return events
}

// Reset forgets the history of the given series.
func (d *Detector) Reset(key model.Key) {
	d.lock.Lock()
	defer d.lock.Unlock()
	delete(d.states, key)
}

func newEvent(t model.CrossType, p Point, fast, slow, prevFast, prevSlow float64) model.CrossEvent {
	return model.CrossEvent{
		Symbol:        p.Key.Symbol,
		Exchange:      p.Key.Exchange,
		Type:          t,
		Time:          p.Time,
		FastValue:     fast,
		SlowValue:     slow,
		PrevFastValue: prevFast,
		PrevSlowValue: prevSlow,
	}
}
