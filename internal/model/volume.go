package model

import "time"

// VolumeSample is a quote volume reading at a point in time.
type VolumeSample struct {
	Time        time.Time `json:"time"`
	QuoteVolume float64   `json:"quoteVolume"`
}

// MovingAveragePoint is a volume sample with the fast and slow moving averages up to it.
// Fast and Slow are nil until enough samples exist for the respective window.
type MovingAveragePoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
	Fast  *float64  `json:"maFast"`
	Slow  *float64  `json:"maSlow"`
}
