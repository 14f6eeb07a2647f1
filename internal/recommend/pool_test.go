package recommend

import (
	"errors"
	"testing"
	"time"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecommendation(id string, created time.Time) model.Recommendation {
	return model.Recommendation{
		ID:          id,
		Symbol:      "BTC",
		OrderSymbol: "BTCUSDT",
		CreatedAt:   created,
		ExpiresAt:   created.Add(model.RecommendationTTL),
		Status:      model.RecommendationPending,
	}
}

func TestPool_Claim(t *testing.T) {
	start := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	type test struct {
		at  time.Time
		err error
	}

	tests := map[string]test{
		"fresh": {
			at: start.Add(time.Minute),
		},
		"just-before-expiry": {
			at: start.Add(model.RecommendationTTL - time.Millisecond),
		},
		"at-expiry": {
			at: start.Add(model.RecommendationTTL),
		},
		"just-after-expiry": {
			at:  start.Add(model.RecommendationTTL + time.Millisecond),
			err: api.ExpiredErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pool := NewPool()
			pool.Add(newRecommendation("r1", start))
			rec, err := pool.Claim("r1", tt.at)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.True(t, errors.Is(err, api.ValidationErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "r1", rec.ID)
			}
			// a claimed recommendation cannot be claimed again
			_, err = pool.Claim("r1", tt.at)
			assert.True(t, errors.Is(err, api.NotFoundErr))
		})
	}
}

func TestPool_Restore(t *testing.T) {
	now := time.Now()
	pool := NewPool()
	pool.Add(newRecommendation("r1", now))

	rec, err := pool.Claim("r1", now)
	require.NoError(t, err)
	_, ok := pool.Get("r1")
	assert.False(t, ok)

	pool.Restore(rec)
	restored, ok := pool.Get("r1")
	require.True(t, ok)
	assert.Equal(t, model.RecommendationPending, restored.Status)
}

func TestPool_Cancel(t *testing.T) {
	now := time.Now()
	pool := NewPool()
	pool.Add(newRecommendation("r1", now))

	rec, err := pool.Cancel("r1")
	require.NoError(t, err)
	assert.Equal(t, model.RecommendationCancelled, rec.Status)
	assert.Empty(t, pool.List())

	_, err = pool.Cancel("r1")
	assert.True(t, errors.Is(err, api.NotFoundErr))
}

func TestPool_Sweep(t *testing.T) {
	start := time.Now()
	pool := NewPool()
	pool.Add(newRecommendation("old", start))
	pool.Add(newRecommendation("new", start.Add(5*time.Minute)))

	assert.Empty(t, pool.Sweep(start.Add(model.RecommendationTTL)))

	expired := pool.Sweep(start.Add(model.RecommendationTTL + time.Second))
	require.Len(t, expired, 1)
	assert.Equal(t, "old", expired[0].ID)
	assert.Equal(t, model.RecommendationExpired, expired[0].Status)

	pending := pool.List()
	require.Len(t, pending, 1)
	assert.Equal(t, "new", pending[0].ID)
}

func TestPool_List(t *testing.T) {
	start := time.Now()
	pool := NewPool()
	pool.Add(newRecommendation("b", start.Add(time.Second)))
	pool.Add(newRecommendation("a", start))
	pool.Add(newRecommendation("c", start.Add(time.Second)))

	ids := make([]string, 0)
	for _, rec := range pool.List() {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
