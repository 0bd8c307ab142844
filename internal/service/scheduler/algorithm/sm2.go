package algorithm

import (
	"math"

	"github.com/flashlearn/scheduler/internal/domain"
)

// SM2 implements the SuperMemo-2 update function.
//
// The three-tier interval rule (1 day, then 6 days, then previous × ease) is
// the textbook SM-2 shape and is preserved exactly; rounding is ceil.
type SM2 struct {
	// MinEase is the ease factor floor. The canonical value is 1.3.
	MinEase float64
	// DefaultEase is the ease assumed before the first review.
	DefaultEase float64
	// FirstIntervalDays is the interval after the first successful repetition.
	FirstIntervalDays float64
	// SecondIntervalDays is the interval after the second successful repetition.
	SecondIntervalDays float64
}

// NewSM2 returns an SM2 updater with the canonical constants.
func NewSM2() *SM2 {
	return &SM2{
		MinEase:            1.3,
		DefaultEase:        2.5,
		FirstIntervalDays:  1,
		SecondIntervalDays: 6,
	}
}

// Initial returns the pre-first-review state: default ease, no repetitions.
func (a *SM2) Initial() State {
	return State{EaseFactor: a.DefaultEase}
}

// Update applies one SM-2 transition.
//
//	ef' = ef + (0.1 − (5−q)·(0.08 + (5−q)·0.02)), floored at MinEase
//	q < 3: repetitions = 0, interval = 1 (lapse always restarts at 1 day)
//	else:  repetitions++, interval = 1 / 6 / ceil(prev × ef')
func (a *SM2) Update(prev State, quality int, elapsedDays float64) State {
	q := float64(clampQuality(quality))

	next := prev
	if next.EaseFactor == 0 {
		next.EaseFactor = a.DefaultEase
	}

	next.EaseFactor = clampFloor(
		next.EaseFactor+(0.1-(5-q)*(0.08+(5-q)*0.02)),
		a.MinEase,
	)

	if clampQuality(quality) < domain.QualityPassing {
		next.Repetitions = 0
		next.IntervalDays = a.FirstIntervalDays
		return next
	}

	next.Repetitions = prev.Repetitions + 1
	switch next.Repetitions {
	case 1:
		next.IntervalDays = a.FirstIntervalDays
	case 2:
		next.IntervalDays = a.SecondIntervalDays
	default:
		next.IntervalDays = math.Ceil(prev.IntervalDays * next.EaseFactor)
	}

	return next
}
