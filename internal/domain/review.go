package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewState is the scheduler's mutable memory for one (user, card) pair.
// A missing row means the card has never been reviewed and is due immediately.
//
// Invariants:
//   - NextReviewAt = LastReviewedAt + IntervalDays (both nil before the
//     first review).
//   - EaseFactor never drops below 1.3.
//   - Stability and Difficulty never drop below 0.1.
//   - Repetitions resets to 0 on any quality below QualityPassing.
type ReviewState struct {
	UserID         uuid.UUID
	CardID         uuid.UUID
	IntervalDays   float64
	EaseFactor     float64
	Stability      float64
	Difficulty     float64
	Repetitions    int
	LastReviewedAt *time.Time
	NextReviewAt   *time.Time
	UpdatedAt      time.Time
}

// IsDue reports whether the card needs review at the given time.
// Never-reviewed cards are always due.
func (s *ReviewState) IsDue(now time.Time) bool {
	if s == nil || s.NextReviewAt == nil {
		return true
	}
	return !s.NextReviewAt.After(now)
}

// ReviewLogEntry records a single grading event. Entries are append-only:
// never mutated, never deleted except by cascading card/user deletion.
// The interval/ease/stability fields snapshot the state that resulted from
// this review.
type ReviewLogEntry struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CardID       uuid.UUID
	Quality      int
	IntervalDays float64
	EaseFactor   float64
	Stability    float64
	Difficulty   float64
	Repetitions  int
	ReviewedAt   time.Time
}

// GradeCounts holds per-quality-band counters for aggregated review stats.
type GradeCounts struct {
	Lapse int // quality 0–2
	Hard  int // quality 3
	Good  int // quality 4
	Easy  int // quality 5
}

// DayReviewCount holds the review count for one local calendar day.
type DayReviewCount struct {
	Date  time.Time
	Count int
}

// ReviewStats holds aggregated per-user review statistics computed in SQL.
type ReviewStats struct {
	DueCount      int
	NewCount      int
	ReviewedToday int
	Grades        GradeCounts
}
