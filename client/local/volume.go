package local

import (
	"context"
	"fmt"
	"sync"

	"github.com/drakos74/free-coin-cross/internal/api"
)

// VolumeSource replays scripted quote volumes per symbol.
// Once the script is exhausted the last value is repeated.
type VolumeSource struct {
	name   api.ExchangeName
	script map[string][]float64
	index  map[string]int
	lock   *sync.Mutex
}

// NewVolumeSource creates a new scripted volume source.
func NewVolumeSource(name api.ExchangeName) *VolumeSource {
	return &VolumeSource{
		name:   name,
		script: make(map[string][]float64),
		index:  make(map[string]int),
		lock:   new(sync.Mutex),
	}
}

// WithVolumes appends the given volumes to the script of the symbol.
func (s *VolumeSource) WithVolumes(symbol string, volumes ...float64) *VolumeSource {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.script[symbol] = append(s.script[symbol], volumes...)
	return s
}

func (s *VolumeSource) Name() api.ExchangeName {
	return s.name
}

func (s *VolumeSource) QuoteVolume(ctx context.Context, symbol string) (float64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	vv, ok := s.script[symbol]
	if !ok || len(vv) == 0 {
		return 0, fmt.Errorf("no volume for %s: %w", symbol, api.NotFoundErr)
	}
	i := s.index[symbol]
	if i >= len(vv) {
		return vv[len(vv)-1], nil
	}
	s.index[symbol] = i + 1
	return vv[i], nil
}
