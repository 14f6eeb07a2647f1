package model

// Balance represents the balance of an asset in the account.
type Balance struct {
	Coin      Coin    `json:"coin"`
	Available float64 `json:"available"`
	Total     float64 `json:"total"`
}

// Covers returns true if the available balance can pay for the given cost.
func (b Balance) Covers(cost float64) bool {
	return b.Available >= cost
}
