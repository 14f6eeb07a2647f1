package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/drakos74/free-coin-cross/internal/emoji"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	// MaxEntries caps the number of retained notifications.
	MaxEntries = 100
	// Retention is the age after which notifications are dropped.
	Retention = 10 * time.Minute
	// CleanupInterval is the cadence of the retention cleanup.
	CleanupInterval = 2 * time.Minute
)

// Ledger keeps the recent cross events for poll based delivery, most recent first.
type Ledger struct {
	entries []model.Notification
	ids     map[string]struct{}
	now     func() time.Time
	lock    *sync.RWMutex
}

// NewLedger creates a new notification ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make([]model.Notification, 0),
		ids:     make(map[string]struct{}),
		now:     time.Now,
		lock:    new(sync.RWMutex),
	}
}

// WithClock overrides the clock used for the creation time of the entries.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// Add records the cross event.
// Adding an event with the same exchange, symbol and time again is a no-op.
func (l *Ledger) Add(event model.CrossEvent) {
	l.lock.Lock()
	defer l.lock.Unlock()

	id := event.ID()
	if _, ok := l.ids[id]; ok {
		log.Debug().Str("id", id).Msg("duplicate notification")
		return
	}

	n := model.Notification{
		ID:        id,
		Type:      event.Type,
		Symbol:    event.Symbol,
		Exchange:  event.Exchange,
		FastValue: event.FastValue,
		SlowValue: event.SlowValue,
		Message:   Format(event),
		CreatedAt: l.now(),
	}

	l.entries = append([]model.Notification{n}, l.entries...)
	l.ids[id] = struct{}{}
	if len(l.entries) > MaxEntries {
		for _, dropped := range l.entries[MaxEntries:] {
			delete(l.ids, dropped.ID)
		}
		l.entries = l.entries[:MaxEntries]
	}
}

// Unnotified returns the entries not yet delivered, most recent first.
func (l *Ledger) Unnotified() []model.Notification {
	l.lock.RLock()
	defer l.lock.RUnlock()

	nn := make([]model.Notification, 0)
	for _, n := range l.entries {
		if !n.Notified {
			nn = append(nn, n)
		}
	}
	return nn
}

// Take returns the entries not yet delivered, most recent first, and flags them as delivered if mark is set.
// Concurrent callers with mark set never receive the same entry.
func (l *Ledger) Take(mark bool) []model.Notification {
	if !mark {
		return l.Unnotified()
	}
	l.lock.Lock()
	defer l.lock.Unlock()

	nn := make([]model.Notification, 0)
	for i, n := range l.entries {
		if n.Notified {
			continue
		}
		nn = append(nn, n)
		l.entries[i].Notified = true
	}
	return nn
}

// All returns all retained entries, most recent first.
func (l *Ledger) All() []model.Notification {
	l.lock.RLock()
	defer l.lock.RUnlock()

	nn := make([]model.Notification, len(l.entries))
	copy(nn, l.entries)
	return nn
}

// MarkNotified flags the given entries as delivered.
// Unknown ids are ignored.
func (l *Ledger) MarkNotified(ids ...string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	mark := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		mark[id] = struct{}{}
	}
	for i, n := range l.entries {
		if _, ok := mark[n.ID]; ok {
			l.entries[i].Notified = true
		}
	}
}

// Cleanup drops the entries older than the retention window, delivered or not.
func (l *Ledger) Cleanup(now time.Time) int {
	l.lock.Lock()
	defer l.lock.Unlock()

	cut := now.Add(-1 * Retention)
	kept := make([]model.Notification, 0, len(l.entries))
	for _, n := range l.entries {
		if n.CreatedAt.Before(cut) {
			delete(l.ids, n.ID)
			continue
		}
		kept = append(kept, n)
	}
	dropped := len(l.entries) - len(kept)
	l.entries = kept
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("kept", len(kept)).Msg("cleaned up notifications")
	}
	return dropped
}

// Stats returns the counts of the retained entries.
func (l *Ledger) Stats() model.NotificationStats {
	l.lock.RLock()
	defer l.lock.RUnlock()

	stats := model.NotificationStats{
		Total: len(l.entries),
	}
	for _, n := range l.entries {
		if n.Notified {
			stats.Notified++
		} else {
			stats.Unnotified++
		}
		switch n.Type {
		case model.Golden:
			stats.GoldenCrosses++
		case model.Death:
			stats.DeathCrosses++
		}
	}
	return stats
}

// Format creates the user facing text for a cross event.
// The sentiment next to the fast average follows its move since the previous sample.
func Format(event model.CrossEvent) string {
	name := "Golden cross"
	if event.Type == model.Death {
		name = "Death cross"
	}
	return fmt.Sprintf("%s %s %s on %s | MA fast %.2f %s MA slow %.2f (%s %.2f%%)",
		emoji.MapCross(event.Type),
		name,
		event.Symbol,
		event.Exchange,
		event.FastValue,
		emoji.MapToSentiment(event.FastValue-event.PrevFastValue),
		event.SlowValue,
		emoji.MapToSign(event.Strength()),
		event.Strength()*100,
	)
}
