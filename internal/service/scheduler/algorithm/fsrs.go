package algorithm

import (
	"math"

	"github.com/flashlearn/scheduler/internal/domain"
)

// MinStability is the floor for stability and difficulty values. It keeps a
// same-day re-review (elapsedDays = 0) from collapsing the state and rules
// out division by zero in the stability exponent.
const MinStability = 0.1

// FSRS implements an FSRS-style update function.
//
// This is a deliberate approximation, not the published FSRS model: the
// curve is replaceable as long as it stays monotonic in quality and bounded
// below. Callers depend only on the Updater contract.
type FSRS struct {
	// InitialStability seeds stability before the first review.
	InitialStability float64
	// InitialDifficulty seeds difficulty before the first review.
	InitialDifficulty float64
}

// NewFSRS returns an FSRS-style updater with the default seeds.
func NewFSRS() *FSRS {
	return &FSRS{
		InitialStability:  1.0,
		InitialDifficulty: 5.0,
	}
}

// Initial returns the pre-first-review state.
func (a *FSRS) Initial() State {
	return State{
		Stability:  a.InitialStability,
		Difficulty: a.InitialDifficulty,
	}
}

// Update applies one FSRS-style transition.
//
//	d' = max(0.1, d + 0.1 − (5−q)·(0.02 + (5−q)·0.01))
//	s' = max(0.1, s · exp(((q−3)·elapsedDays) / (d'·10)))
//	interval = s' · d'
func (a *FSRS) Update(prev State, quality int, elapsedDays float64) State {
	q := float64(clampQuality(quality))

	next := prev
	if next.Stability == 0 {
		next.Stability = a.InitialStability
	}
	if next.Difficulty == 0 {
		next.Difficulty = a.InitialDifficulty
	}

	next.Difficulty = clampFloor(
		next.Difficulty+0.1-(5-q)*(0.02+(5-q)*0.01),
		MinStability,
	)
	next.Stability = clampFloor(
		next.Stability*math.Exp(((q-3)*elapsedDays)/(next.Difficulty*10)),
		MinStability,
	)
	next.IntervalDays = next.Stability * next.Difficulty

	if clampQuality(quality) < domain.QualityPassing {
		next.Repetitions = 0
	} else {
		next.Repetitions = prev.Repetitions + 1
	}

	return next
}
