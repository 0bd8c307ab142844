// Package algorithm implements the pluggable review update functions that
// drive spaced-repetition scheduling. Both the SM-2 and the FSRS-style
// variants are pure state transitions: no I/O, no clock, no randomness.
package algorithm

import (
	"math"

	"github.com/flashlearn/scheduler/internal/domain"
)

// State is the algorithm-visible slice of a card's review state. Each updater
// reads and writes only the fields its model uses; the rest pass through
// untouched so the two variants can share one storage row.
type State struct {
	IntervalDays float64
	EaseFactor   float64
	Stability    float64
	Difficulty   float64
	Repetitions  int
}

// Updater computes the next scheduling state from the previous one.
//
// Implementations must be total over the clamped domain: quality is clamped
// to [0, 5] and elapsedDays is guaranteed non-negative by the caller. An
// Updater never fails and never produces a negative interval.
type Updater interface {
	// Update returns the state after grading a review with the given
	// quality, elapsedDays after the previous review (0 for a same-day or
	// first-ever review).
	Update(prev State, quality int, elapsedDays float64) State

	// Initial returns the state assumed for a card that has never been
	// reviewed.
	Initial() State
}

// ForAlgorithm returns the updater implementing the given variant.
// Unknown values fall back to SM-2, the conservative default.
func ForAlgorithm(alg domain.Algorithm) Updater {
	if alg == domain.AlgorithmFSRS {
		return NewFSRS()
	}
	return NewSM2()
}

// clampFloor returns v bounded below by floor.
func clampFloor(v, floor float64) float64 {
	return math.Max(floor, v)
}

// clampQuality delegates to the domain rule: out-of-range scores are
// clamped, never rejected.
func clampQuality(q int) int { return domain.ClampQuality(q) }
