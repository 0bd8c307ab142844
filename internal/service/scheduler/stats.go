package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flashlearn/scheduler/internal/domain"
)

// CountToday returns, per deck in scope, how many reviews the user has
// submitted during the current local day. Day boundaries follow the caller's
// timezone; an unknown zone falls back to UTC. Decks with no reviews today
// map to zero.
func (s *Service) CountToday(ctx context.Context, input CountTodayInput) (map[uuid.UUID]int, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	deckIDs, err := s.resolveScopeDecks(ctx, input.Scope)
	if err != nil {
		return nil, fmt.Errorf("resolve scope: %w", err)
	}
	if len(deckIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	tz := ParseTimezone(input.Timezone)
	now := s.clock.Now()
	from := DayStart(now, tz)
	to := NextDayStart(now, tz)

	counts, err := s.logs.CountByDeckBetween(ctx, input.UserID, deckIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	for _, deckID := range deckIDs {
		if _, ok := counts[deckID]; !ok {
			counts[deckID] = 0
		}
	}
	return counts, nil
}

// Stats returns the user's review dashboard: cards due now, cards never
// reviewed, reviews submitted during the current local day, and the grade
// distribution of those reviews.
func (s *Service) Stats(ctx context.Context, input StatsInput) (*domain.ReviewStats, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tz := ParseTimezone(input.Timezone)
	from := DayStart(now, tz)
	to := NextDayStart(now, tz)

	due, err := s.states.CountDue(ctx, input.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("count due: %w", err)
	}

	newCount, err := s.states.CountNever(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("count new: %w", err)
	}

	reviewedToday, err := s.logs.CountBetween(ctx, input.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}

	grades, err := s.logs.GradeCountsBetween(ctx, input.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("grade counts: %w", err)
	}

	return &domain.ReviewStats{
		DueCount:      due,
		NewCount:      newCount,
		ReviewedToday: reviewedToday,
		Grades:        grades,
	}, nil
}

// Activity returns a per-day review count series covering the last
// input.Days local days, today included. Days without reviews appear with a
// zero count.
func (s *Service) Activity(ctx context.Context, input ActivityInput) ([]domain.DayReviewCount, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tz := ParseTimezone(input.Timezone)
	now := s.clock.Now()
	to := NextDayStart(now, tz)
	from := DayStart(now.In(tz).AddDate(0, 0, -(input.Days-1)), tz)

	counts, err := s.logs.DailyCounts(ctx, input.UserID, from, to, tz.String())
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}

	// The store returns bare dates (midnight UTC); key them as-is so they
	// line up with the local-day labels below.
	byDay := make(map[string]int, len(counts))
	for _, c := range counts {
		byDay[c.Date.UTC().Format("2006-01-02")] = c.Count
	}

	series := make([]domain.DayReviewCount, 0, input.Days)
	cursor := from
	for i := 0; i < input.Days; i++ {
		local := cursor.In(tz)
		series = append(series, domain.DayReviewCount{
			Date:  local,
			Count: byDay[local.Format("2006-01-02")],
		})
		cursor = NextDayStart(cursor, tz)
	}
	return series, nil
}
