// Package domain declares slate types and ports
package domain

import "time"

// Slate is one served word selection
type Slate struct {
	ID        string    `json:"id"`
	Community string    `json:"community"`
	Words     []string  `json:"words"`
	CreatedAt time.Time `json:"created_at"`
}

// Config tunes selection and the aggregator. All fields are clamped on read
type Config struct {
	ExplorationRate    float64 `json:"exploration_rate"`
	ZScoreClamp        float64 `json:"z_score_clamp"`
	WeightPickRate     float64 `json:"weight_pick_rate"`
	WeightPostRate     float64 `json:"weight_post_rate"`
	UCBConstant        float64 `json:"ucb_constant"`
	ScoreDecayRate     float64 `json:"score_decay_rate"`
	UncertaintyDamping float64 `json:"uncertainty_damping"`
	UncertaintyGrowth  float64 `json:"uncertainty_growth"`
}

// GenerateInput requests a slate for a community
type GenerateInput struct {
	Community string `json:"community" validate:"required"`
	Count     int    `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
}

// ImpressionInput records that a slate was shown
type ImpressionInput struct {
	SlateID string `json:"slate_id" validate:"required"`
}

// PickInput records that a word was chosen from a slate
type PickInput struct {
	SlateID string `json:"slate_id" validate:"required"`
	Word    string `json:"word" validate:"required"`
}

// PublishInput records that a drawing for a word was posted
type PublishInput struct {
	Community string `json:"community" validate:"required"`
	Word      string `json:"word" validate:"required"`
}

// RefreshInput triggers one aggregator pass for a community
type RefreshInput struct {
	Community string `json:"community" validate:"required"`
}

// WordStat is the funnel readout for one word
type WordStat struct {
	Word   string `json:"word"`
	Served int64  `json:"served"`
	Picked int64  `json:"picked"`
	Posted int64  `json:"posted"`
}
