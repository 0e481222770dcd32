// Package elo implements the standard Elo rating update rule
package elo

import "math"

// DefaultInitial is the rating new entries start at
const DefaultInitial = 1200

// DefaultK is the update magnitude constant
const DefaultK = 32

// Expected returns the logistic win expectation for a rated rw against rl
func Expected(rw, rl float64) float64 {
	return 1 / (1 + math.Pow(10, (rl-rw)/400))
}

// Delta returns the rating deltas for winner and loser.
// The two always sum to zero, which keeps total rating invariant per vote.
func Delta(k, rw, rl float64) (dw, dl float64) {
	dw = k * (1 - Expected(rw, rl))
	return dw, -dw
}
