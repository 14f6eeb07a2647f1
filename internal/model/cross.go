package model

import (
	"fmt"
	"time"
)

// CrossType defines the direction of a moving average crossing.
type CrossType string

const (
	// Golden is the fast average moving above the slow one.
	Golden CrossType = "golden"
	// Death is the fast average moving below the slow one.
	Death CrossType = "death"
)

// CrossEvent is a detected moving average crossing.
type CrossEvent struct {
	Symbol        string    `json:"symbol"`
	Exchange      string    `json:"exchange"`
	Type          CrossType `json:"type"`
	Time          time.Time `json:"timestamp"`
	FastValue     float64   `json:"fastValue"`
	SlowValue     float64   `json:"slowValue"`
	PrevFastValue float64   `json:"prevFastValue"`
	PrevSlowValue float64   `json:"prevSlowValue"`
}

// Key returns the series key of the event.
func (e CrossEvent) Key() Key {
	return Key{Exchange: e.Exchange, Symbol: e.Symbol}
}

// ID returns the identity of the event as exchange-symbol-timestamp.
func (e CrossEvent) ID() string {
	return fmt.Sprintf("%s-%s-%d", e.Exchange, e.Symbol, e.Time.UnixMilli())
}

// Strength returns the relative distance of the fast average to the slow one.
func (e CrossEvent) Strength() float64 {
	if e.SlowValue == 0 {
		return 0
	}
	return (e.FastValue - e.SlowValue) / e.SlowValue
}
