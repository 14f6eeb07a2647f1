package model

import "time"

// Notification is a cross event waiting to be picked up by a polling client.
type Notification struct {
	ID        string    `json:"id"`
	Type      CrossType `json:"type"`
	Symbol    string    `json:"symbol"`
	Exchange  string    `json:"exchange"`
	FastValue float64   `json:"maFast"`
	SlowValue float64   `json:"maSlow"`
	Message   string    `json:"message"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationStats summarises the ledger contents.
type NotificationStats struct {
	Total         int `json:"total"`
	Unnotified    int `json:"unnotified"`
	Notified      int `json:"notified"`
	GoldenCrosses int `json:"goldenCrosses"`
	DeathCrosses  int `json:"deathCrosses"`
}
