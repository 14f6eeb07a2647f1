package recommend

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/metrics"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
)

// Pool keeps the pending recommendations until they are executed, cancelled or expire.
type Pool struct {
	pending map[string]model.Recommendation
	lock    *sync.RWMutex
}

// NewPool creates a new recommendation pool.
func NewPool() *Pool {
	return &Pool{
		pending: make(map[string]model.Recommendation),
		lock:    new(sync.RWMutex),
	}
}

// Add stores the recommendation.
func (p *Pool) Add(rec model.Recommendation) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.pending[rec.ID] = rec
}

// Get returns the recommendation for the given id.
func (p *Pool) Get(id string) (model.Recommendation, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	rec, ok := p.pending[id]
	return rec, ok
}

// List returns all pending recommendations, oldest first.
func (p *Pool) List() []model.Recommendation {
	p.lock.RLock()
	defer p.lock.RUnlock()
	recs := make([]model.Recommendation, 0, len(p.pending))
	for _, rec := range p.pending {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})
	return recs
}

// Claim removes the recommendation from the pool for execution.
// An expired recommendation is dropped and reported as such.
func (p *Pool) Claim(id string, now time.Time) (model.Recommendation, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	rec, ok := p.pending[id]
	if !ok {
		return model.Recommendation{}, fmt.Errorf("recommendation %s: %w", id, api.NotFoundErr)
	}
	delete(p.pending, id)
	if rec.Expired(now) {
		metrics.Observer.Recommendation(rec.OrderSymbol, string(model.RecommendationExpired))
		return model.Recommendation{}, fmt.Errorf("recommendation %s at %s: %w", id, rec.ExpiresAt.Format(time.RFC3339), api.ExpiredErr)
	}
	return rec, nil
}

// Restore puts back a claimed recommendation that could not be executed.
func (p *Pool) Restore(rec model.Recommendation) {
	p.lock.Lock()
	defer p.lock.Unlock()
	rec.Status = model.RecommendationPending
	p.pending[rec.ID] = rec
}

// Cancel drops the pending recommendation.
func (p *Pool) Cancel(id string) (model.Recommendation, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	rec, ok := p.pending[id]
	if !ok {
		return model.Recommendation{}, fmt.Errorf("recommendation %s: %w", id, api.NotFoundErr)
	}
	delete(p.pending, id)
	rec.Status = model.RecommendationCancelled
	log.Info().Str("id", id).Str("symbol", rec.OrderSymbol).Msg("recommendation cancelled")
	metrics.Observer.Recommendation(rec.OrderSymbol, string(model.RecommendationCancelled))
	return rec, nil
}

// Sweep removes the expired recommendations.
func (p *Pool) Sweep(now time.Time) []model.Recommendation {
	p.lock.Lock()
	defer p.lock.Unlock()
	expired := make([]model.Recommendation, 0)
	for id, rec := range p.pending {
		if rec.Expired(now) {
			delete(p.pending, id)
			rec.Status = model.RecommendationExpired
			expired = append(expired, rec)
			metrics.Observer.Recommendation(rec.OrderSymbol, string(model.RecommendationExpired))
		}
	}
	if len(expired) > 0 {
		log.Debug().Int("expired", len(expired)).Int("pending", len(p.pending)).Msg("swept recommendations")
	}
	return expired
}
