// Package selection draws quiz questions to match a difficulty distribution
// derived from the adaptive level.
package selection

import (
	"math"

	"github.com/abhisek/tickerquiz/internal/adaptive"
)

// Targets is the number of questions wanted per difficulty.
type Targets struct {
	D1 int
	D2 int
	D3 int
}

// Total returns D1+D2+D3.
func (t Targets) Total() int {
	return t.D1 + t.D2 + t.D3
}

// For returns the target count for difficulty d (0 for unknown difficulties).
func (t Targets) For(d int) int {
	switch d {
	case 1:
		return t.D1
	case 2:
		return t.D2
	case 3:
		return t.D3
	default:
		return 0
	}
}

// extremeShare is the share of the easiest bucket at the minimum level and of
// the hardest bucket at the maximum level.
const extremeShare = 0.6

// TargetsFor splits count across the three difficulties. The hard share grows
// linearly with the adaptive level, the easy share shrinks symmetrically and
// the middle bucket absorbs the remainder.
func TargetsFor(level adaptive.Level, count int) Targets {
	if count <= 0 {
		return Targets{}
	}

	f := level.Fraction()
	d1 := int(math.Round(float64(count) * extremeShare * (1 - f)))
	d3 := int(math.Round(float64(count) * extremeShare * f))
	d2 := count - d1 - d3
	if d2 < 0 {
		d2 = 0
	}

	// Rounding drift is corrected against the larger extreme, never D2.
	if diff := count - (d1 + d2 + d3); diff != 0 {
		if d3 > d1 {
			d3 = max(0, d3+diff)
		} else {
			d1 = max(0, d1+diff)
		}
	}

	return Targets{D1: d1, D2: d2, D3: d3}
}
