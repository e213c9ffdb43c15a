// Package adaptive tracks the continuous difficulty-targeting scalar that
// steers question selection. It is distinct from the user-facing integer
// level in the progression ledger.
package adaptive

import "math"

// Level is the adaptive difficulty scalar in [Min, Max].
type Level float64

const (
	Min     Level = 1.0
	Max     Level = 3.0
	Initial Level = Min

	// Step is the nudge applied after every answer.
	Step Level = 0.1
)

// Update returns the level after an answer: up by Step on a correct answer,
// down by Step otherwise, clamped to [Min, Max].
func Update(current Level, correct bool) Level {
	next := current - Step
	if correct {
		next = current + Step
	}
	return Clamp(round2(next))
}

// Clamp bounds l to [Min, Max]. NaN maps to Initial.
func Clamp(l Level) Level {
	switch {
	case math.IsNaN(float64(l)):
		return Initial
	case l < Min:
		return Min
	case l > Max:
		return Max
	default:
		return l
	}
}

// Fraction maps the level onto [0, 1], 0 at Min and 1 at Max.
func (l Level) Fraction() float64 {
	return float64(Clamp(l)-Min) / float64(Max-Min)
}

// round2 keeps repeated ±Step updates from accumulating float drift.
func round2(l Level) Level {
	return Level(math.Round(float64(l)*100) / 100)
}
