// Package domain declares consumable boost types and ports
package domain

import "time"

// Effect kinds
const (
	KindScoreMultiplier = "score_multiplier"
	KindExtraTime       = "extra_time"
)

// Item describes one purchasable consumable
type Item struct {
	ID         string        `json:"id"`
	Kind       string        `json:"kind"`
	Multiplier float64       `json:"multiplier,omitempty"`
	ExtraTime  time.Duration `json:"extra_time,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Catalog is the fixed item list. Effects stack across kinds: the score
// multiplier is the max active value, extra drawing time is the sum
var Catalog = map[string]Item{
	"score_multiplier_2x": {
		ID: "score_multiplier_2x", Kind: KindScoreMultiplier, Multiplier: 2, Duration: 24 * time.Hour,
	},
	"score_multiplier_3x": {
		ID: "score_multiplier_3x", Kind: KindScoreMultiplier, Multiplier: 3, Duration: 12 * time.Hour,
	},
	"extra_time_30s": {
		ID: "extra_time_30s", Kind: KindExtraTime, ExtraTime: 30 * time.Second, Duration: 24 * time.Hour,
	},
	"extra_time_60s": {
		ID: "extra_time_60s", Kind: KindExtraTime, ExtraTime: 60 * time.Second, Duration: 24 * time.Hour,
	},
}

// Activation is one live boost
type Activation struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Item       string        `json:"item"`
	Kind       string        `json:"kind"`
	Multiplier float64       `json:"multiplier,omitempty"`
	ExtraTime  time.Duration `json:"extra_time,omitempty"`
	ExpiresAt  time.Time     `json:"expires_at"`
}

// GrantInput adds items to a user's inventory
type GrantInput struct {
	UserID string `json:"user_id" validate:"required"`
	Item   string `json:"item" validate:"required"`
	Count  int64  `json:"count,omitempty" validate:"omitempty,min=1"`
}

// ActivateInput consumes one item from inventory
type ActivateInput struct {
	UserID string `json:"user_id" validate:"required"`
	Item   string `json:"item" validate:"required"`
}

// Effects is the aggregate view progression and drawing flows consume
type Effects struct {
	ScoreMultiplier float64       `json:"score_multiplier"`
	ExtraTime       time.Duration `json:"extra_time"`
	Active          []Activation  `json:"active"`
}
