// Package reviewlog implements the append-only ReviewLog repository using
// PostgreSQL. Aggregations (per-deck counts, grade distribution, daily
// series) are computed entirely in SQL.
package reviewlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashlearn/scheduler/internal/adapter/postgres"
	"github.com/flashlearn/scheduler/internal/domain"
)

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const logColumns = `id, user_id, card_id, quality, interval_days, ease_factor,
stability, difficulty, repetitions, reviewed_at`

const appendSQL = `
INSERT INTO review_logs (` + logColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + logColumns

const listByCardSQL = `
SELECT ` + logColumns + `
FROM review_logs
WHERE user_id = $1 AND card_id = $2
ORDER BY reviewed_at DESC`

const countByCardSQL = `
SELECT count(*) FROM review_logs WHERE user_id = $1 AND card_id = $2`

const countByDeckBetweenSQL = `
SELECT c.deck_id, count(*)
FROM review_logs rl
JOIN cards c ON rl.card_id = c.id
WHERE rl.user_id = $1
  AND c.deck_id = ANY($2::uuid[])
  AND rl.reviewed_at >= $3 AND rl.reviewed_at < $4
GROUP BY c.deck_id`

const countBetweenSQL = `
SELECT count(*) FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2 AND reviewed_at < $3`

const gradeCountsBetweenSQL = `
SELECT
    count(*) FILTER (WHERE quality <= 2) AS lapse_count,
    count(*) FILTER (WHERE quality = 3)  AS hard_count,
    count(*) FILTER (WHERE quality = 4)  AS good_count,
    count(*) FILTER (WHERE quality = 5)  AS easy_count
FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2 AND reviewed_at < $3`

const dailyCountsSQL = `
SELECT
    date_trunc('day', reviewed_at AT TIME ZONE $4)::date AS review_date,
    count(*) AS review_count
FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2 AND reviewed_at < $3
GROUP BY review_date
ORDER BY review_date`

// Append inserts a review log entry and returns the persisted row.
// Entries are never updated or deleted afterwards.
func (r *Repo) Append(ctx context.Context, entry *domain.ReviewLogEntry) (*domain.ReviewLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var out domain.ReviewLogEntry
	err := querier.QueryRow(ctx, appendSQL,
		entry.ID, entry.UserID, entry.CardID, entry.Quality,
		entry.IntervalDays, entry.EaseFactor, entry.Stability,
		entry.Difficulty, entry.Repetitions, entry.ReviewedAt,
	).Scan(
		&out.ID, &out.UserID, &out.CardID, &out.Quality,
		&out.IntervalDays, &out.EaseFactor, &out.Stability,
		&out.Difficulty, &out.Repetitions, &out.ReviewedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "review_log", entry.ID)
	}

	return &out, nil
}

// ListByCard returns a card's review logs ordered by reviewed_at DESC with
// limit/offset pagination, plus the total count for the card.
func (r *Repo) ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit, offset int) ([]*domain.ReviewLogEntry, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, countByCardSQL, userID, cardID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count review_logs by card: %w", err)
	}

	// limit <= 0 means "no limit": leave the LIMIT clause out entirely.
	query := listByCardSQL + ` OFFSET $3`
	args := []any{userID, cardID, offset}
	if limit > 0 {
		query = listByCardSQL + ` LIMIT $3 OFFSET $4`
		args = []any{userID, cardID, limit, offset}
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list review_logs by card: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ReviewLogEntry
	for rows.Next() {
		var e domain.ReviewLogEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CardID, &e.Quality,
			&e.IntervalDays, &e.EaseFactor, &e.Stability,
			&e.Difficulty, &e.Repetitions, &e.ReviewedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review_log: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review_logs: %w", err)
	}

	if entries == nil {
		entries = []*domain.ReviewLogEntry{}
	}

	return entries, total, nil
}

// CountByDeckBetween returns per-deck review counts for a user in the
// half-open interval [from, to). Decks without reviews are absent from the
// result map.
func (r *Repo) CountByDeckBetween(ctx context.Context, userID uuid.UUID, deckIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error) {
	if len(deckIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByDeckBetweenSQL, userID, deckIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("count review_logs by deck: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var deckID uuid.UUID
		var count int
		if err := rows.Scan(&deckID, &count); err != nil {
			return nil, fmt.Errorf("scan deck count: %w", err)
		}
		counts[deckID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deck counts: %w", err)
	}

	return counts, nil
}

// CountBetween returns the user's total review count in [from, to).
func (r *Repo) CountBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countBetweenSQL, userID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count review_logs: %w", err)
	}
	return count, nil
}

// GradeCountsBetween returns the user's grade distribution in [from, to),
// bucketed into lapse (0-2), hard (3), good (4) and easy (5).
func (r *Repo) GradeCountsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.GradeCounts, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var gc domain.GradeCounts
	err := querier.QueryRow(ctx, gradeCountsBetweenSQL, userID, from, to).Scan(
		&gc.Lapse, &gc.Hard, &gc.Good, &gc.Easy,
	)
	if err != nil {
		return domain.GradeCounts{}, fmt.Errorf("grade counts: %w", err)
	}
	return gc, nil
}

// DailyCounts returns per-local-day review counts in [from, to), grouped by
// calendar day in the given IANA timezone. Days without reviews are absent;
// the service layer zero-fills the series.
func (r *Repo) DailyCounts(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, dailyCountsSQL, userID, from, to, timezone)
	if err != nil {
		return nil, fmt.Errorf("daily review counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.DayReviewCount
	for rows.Next() {
		var dc domain.DayReviewCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily counts: %w", err)
	}

	if counts == nil {
		counts = []domain.DayReviewCount{}
	}

	return counts, nil
}
