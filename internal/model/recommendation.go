package model

import "time"

// RecommendationTTL is the validity window of a recommendation.
const RecommendationTTL = 10 * time.Minute

// RecommendationStatus is the lifecycle state of a recommendation.
type RecommendationStatus string

const (
	RecommendationPending   RecommendationStatus = "pending"
	RecommendationExecuted  RecommendationStatus = "executed"
	RecommendationCancelled RecommendationStatus = "cancelled"
	RecommendationExpired   RecommendationStatus = "expired"
)

// PriceOptions are the limit prices offered for a recommendation.
type PriceOptions struct {
	Conservative float64 `json:"conservative"`
	Moderate     float64 `json:"moderate"`
	Aggressive   float64 `json:"aggressive"`
}

// Probabilities are the estimated fill probabilities for each price option.
type Probabilities struct {
	Conservative float64 `json:"conservative"`
	Moderate     float64 `json:"moderate"`
	Aggressive   float64 `json:"aggressive"`
}

// Recommendation is a priced and time boxed suggestion to open a position.
type Recommendation struct {
	ID            string               `json:"id"`
	Symbol        string               `json:"symbol"`
	OrderSymbol   string               `json:"orderSymbol"`
	Side          Side                 `json:"side"`
	Trigger       CrossEvent           `json:"triggerEvent"`
	Prices        PriceOptions         `json:"priceOptions"`
	Probability   Probabilities        `json:"executionProbability"`
	Quantity      float64              `json:"quantity"`
	EstimatedCost float64              `json:"estimatedCost"`
	DefaultPrice  float64              `json:"defaultPrice"`
	Confidence    int                  `json:"confidence"`
	CreatedAt     time.Time            `json:"createdAt"`
	ExpiresAt     time.Time            `json:"expiresAt"`
	Status        RecommendationStatus `json:"status"`
}

// Expired returns true if the recommendation cannot be executed any more at the given time.
func (r Recommendation) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
