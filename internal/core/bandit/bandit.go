// Package bandit holds the pure math for UCB word selection:
// exponential score decay, the UCB bonus, and z-scored funnel rates.
package bandit

import "math"

// Config is the tunable surface of the word-selection bandit
type Config struct {
	ExplorationRate float64 // chance to substitute one slot with a random word
	ZScoreClamp     float64 // cap on rate z-scores
	WeightPickRate  float64 // weight of the pick-rate z-score
	WeightPostRate  float64 // weight of the post-rate z-score
	UCBConstant     float64 // multiplier on sqrt(uncertainty)
	ScoreDecayRate  float64 // per-hour exponential decay
}

// Default returns the stock bandit tuning
func Default() Config {
	return Config{
		ExplorationRate: 0.15,
		ZScoreClamp:     3,
		WeightPickRate:  1,
		WeightPostRate:  2,
		UCBConstant:     1,
		ScoreDecayRate:  0.01,
	}
}

// Clamped returns cfg with every field forced into its valid range
func (c Config) Clamped() Config {
	c.ExplorationRate = clamp(c.ExplorationRate, 0, 1)
	c.ZScoreClamp = math.Max(c.ZScoreClamp, 0.1)
	c.WeightPickRate = math.Max(c.WeightPickRate, 0)
	c.WeightPostRate = math.Max(c.WeightPostRate, 0)
	c.UCBConstant = math.Max(c.UCBConstant, 0.1)
	c.ScoreDecayRate = clamp(c.ScoreDecayRate, 0, 1)
	return c
}

// Decay applies exponential score decay for the hours since last serve.
// hours <= 0 leaves the score unchanged.
func Decay(score, decayRate, hours float64) float64 {
	if hours <= 0 || decayRate <= 0 {
		return score
	}
	return score * math.Exp(-decayRate*hours)
}

// UCB is the selection score: exploit plus exploration bonus
func UCB(score, uncertainty, ucbConstant float64) float64 {
	if uncertainty < 0 {
		uncertainty = 0
	}
	return score + ucbConstant*math.Sqrt(uncertainty)
}

// MeanStd returns the population mean and standard deviation of xs
func MeanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(xs)))
	return mean, std
}

// ZScores standardizes xs and clamps each value to ±clamp.
// A zero std (all rates equal) yields all-zero scores; NaN never propagates.
func ZScores(xs []float64, clamp float64) []float64 {
	out := make([]float64, len(xs))
	mean, std := MeanStd(xs)
	if std == 0 {
		return out
	}
	for i, x := range xs {
		z := (x - mean) / std
		if z > clamp {
			z = clamp
		}
		if z < -clamp {
			z = -clamp
		}
		out[i] = z
	}
	return out
}

// DampUncertainty shrinks uncertainty multiplicatively with impressions.
// Strictly decreasing for served > 0.
func DampUncertainty(u float64, served int64, damping float64) float64 {
	if served <= 0 || u <= 0 {
		return u
	}
	return u * math.Exp(-damping*float64(served))
}

// GrowUncertainty widens uncertainty on each global decay step so stale
// words become explorable again. Strictly increasing.
func GrowUncertainty(u, growth float64) float64 {
	if growth <= 0 {
		return u
	}
	return u + growth
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
