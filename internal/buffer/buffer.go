package buffer

import (
	"time"

	"github.com/drakos74/free-coin-cross/internal/model"
)

// Series defines a time ordered sample buffer that acts like a constant size queue.
// The caller is responsible for pushing samples in time order.
type Series struct {
	size   int
	values []model.VolumeSample
}

// NewSeries creates a new series keeping at most size samples.
func NewSeries(size int) *Series {
	return &Series{
		size:   size,
		values: make([]model.VolumeSample, 0),
	}
}

// Push adds a sample to the series.
// It returns the evicted sample and true, if the size limit was exceeded.
func (s *Series) Push(sample model.VolumeSample) (model.VolumeSample, bool) {
	s.values = append(s.values, sample)
	if s.size > 0 && len(s.values) > s.size {
		value := s.values[0]
		s.values = s.values[1:]
		return value, true
	}
	return model.VolumeSample{}, false
}

// PruneBefore drops all samples older than the given time and returns how many were dropped.
func (s *Series) PruneBefore(t time.Time) int {
	i := 0
	for i < len(s.values) && s.values[i].Time.Before(t) {
		i++
	}
	if i > 0 {
		s.values = s.values[i:]
	}
	return i
}

// Last returns the most recent sample.
func (s *Series) Last() (model.VolumeSample, bool) {
	size := len(s.values)
	if size > 0 {
		return s.values[size-1], true
	}
	return model.VolumeSample{}, false
}

// Get returns the samples in the order they were added.
func (s *Series) Get() []model.VolumeSample {
	vv := make([]model.VolumeSample, len(s.values))
	copy(vv, s.values)
	return vv
}

// Tail returns the quote volumes of the last n samples, oldest first.
// It returns false if there are fewer than n samples.
func (s *Series) Tail(n int) ([]float64, bool) {
	size := len(s.values)
	if n <= 0 || size < n {
		return nil, false
	}
	vv := make([]float64, n)
	for i, v := range s.values[size-n:] {
		vv[i] = v.QuoteVolume
	}
	return vv, true
}

// Len returns the current length of the series.
func (s *Series) Len() int {
	return len(s.values)
}
