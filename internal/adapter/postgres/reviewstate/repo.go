// Package reviewstate implements the ReviewState repository using PostgreSQL.
// Point lookups and the upsert use static SQL; due-card selection is built
// with squirrel because the scope filter and the limit vary per call.
package reviewstate

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashlearn/scheduler/internal/adapter/postgres"
	"github.com/flashlearn/scheduler/internal/domain"
)

// Repo provides review state persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review state repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const stateColumns = `user_id, card_id, interval_days, ease_factor, stability, difficulty,
repetitions, last_reviewed_at, next_review_at, updated_at`

const getSQL = `
SELECT ` + stateColumns + `
FROM review_states
WHERE user_id = $1 AND card_id = $2`

const getForUpdateSQL = getSQL + `
FOR UPDATE`

const ensureSQL = `
INSERT INTO review_states (user_id, card_id)
VALUES ($1, $2)
ON CONFLICT (user_id, card_id) DO NOTHING`

const upsertSQL = `
INSERT INTO review_states (` + stateColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id, card_id) DO UPDATE SET
    interval_days    = EXCLUDED.interval_days,
    ease_factor      = EXCLUDED.ease_factor,
    stability        = EXCLUDED.stability,
    difficulty       = EXCLUDED.difficulty,
    repetitions      = EXCLUDED.repetitions,
    last_reviewed_at = EXCLUDED.last_reviewed_at,
    next_review_at   = EXCLUDED.next_review_at,
    updated_at       = EXCLUDED.updated_at`

const countDueSQL = `
SELECT count(*)
FROM cards c
JOIN decks d ON c.deck_id = d.id
LEFT JOIN review_states rs ON rs.card_id = c.id AND rs.user_id = $1
WHERE d.user_id = $1
  AND (rs.next_review_at IS NULL OR rs.next_review_at <= $2)`

const countNeverSQL = `
SELECT count(*)
FROM cards c
JOIN decks d ON c.deck_id = d.id
LEFT JOIN review_states rs ON rs.card_id = c.id AND rs.user_id = $1
WHERE d.user_id = $1
  AND rs.card_id IS NULL`

// Get returns the review state for a (user, card) pair.
// Returns domain.ErrNotFound if the card has never been reviewed.
func (r *Repo) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	return r.get(ctx, getSQL, userID, cardID)
}

// GetForUpdate is Get with a row lock. It must run inside a transaction;
// the lock holds until that transaction commits or rolls back.
func (r *Repo) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	return r.get(ctx, getForUpdateSQL, userID, cardID)
}

func (r *Repo) get(ctx context.Context, query string, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var st domain.ReviewState
	err := querier.QueryRow(ctx, query, userID, cardID).Scan(
		&st.UserID, &st.CardID, &st.IntervalDays, &st.EaseFactor,
		&st.Stability, &st.Difficulty, &st.Repetitions,
		&st.LastReviewedAt, &st.NextReviewAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "review_state", cardID)
	}

	return &st, nil
}

// Ensure creates an empty state row for a (user, card) pair if none exists.
// SELECT ... FOR UPDATE locks nothing when the row is missing, so callers
// that need per-pair serialization must call Ensure inside the transaction
// before GetForUpdate. A row with a NULL last_reviewed_at is the placeholder.
func (r *Repo) Ensure(ctx context.Context, userID, cardID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, ensureSQL, userID, cardID); err != nil {
		return postgres.MapError(err, "review_state", cardID)
	}

	return nil
}

// Upsert inserts or fully replaces the review state for a (user, card) pair.
func (r *Repo) Upsert(ctx context.Context, st *domain.ReviewState) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, upsertSQL,
		st.UserID, st.CardID, st.IntervalDays, st.EaseFactor,
		st.Stability, st.Difficulty, st.Repetitions,
		st.LastReviewedAt, st.NextReviewAt, st.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "review_state", st.CardID)
	}

	return nil
}

// ListDue returns card IDs from cardIDs that are due at asOf, ordered by
// next_review_at ascending with never-reviewed cards first, ties broken by
// card ID. limit <= 0 disables the limit; it always applies after ordering.
func (r *Repo) ListDue(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, asOf time.Time, limit int) ([]uuid.UUID, error) {
	q := r.scopedQuery(userID, cardIDs).
		Where(sq.Or{
			sq.Eq{"rs.next_review_at": nil},
			sq.LtOrEq{"rs.next_review_at": asOf},
		})
	return r.listIDs(ctx, q, limit)
}

// ListNever returns card IDs from cardIDs that have no review state, ordered
// by card ID.
func (r *Repo) ListNever(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	q := r.scopedQuery(userID, cardIDs).
		Where(sq.Eq{"rs.card_id": nil})
	return r.listIDs(ctx, q, limit)
}

// ListAllOrdered returns all card IDs from cardIDs in due order regardless of
// due state.
func (r *Repo) ListAllOrdered(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	return r.listIDs(ctx, r.scopedQuery(userID, cardIDs), limit)
}

// CountDue counts all of the user's cards due at asOf, across every deck.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countDueSQL, userID, asOf).Scan(&count); err != nil {
		return 0, fmt.Errorf("count due: %w", err)
	}
	return count, nil
}

// CountNever counts the user's cards that have never been reviewed.
func (r *Repo) CountNever(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countNeverSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count never reviewed: %w", err)
	}
	return count, nil
}

// scopedQuery builds the shared card/state join with the canonical ordering:
// NULLS FIRST puts never-reviewed cards ahead of everything with a due time.
func (r *Repo) scopedQuery(userID uuid.UUID, cardIDs []uuid.UUID) sq.SelectBuilder {
	return psql.
		Select("c.id").
		From("cards c").
		LeftJoin("review_states rs ON rs.card_id = c.id AND rs.user_id = ?", userID).
		Where(sq.Eq{"c.id": cardIDs}).
		OrderBy("rs.next_review_at ASC NULLS FIRST", "c.id ASC")
}

func (r *Repo) listIDs(ctx context.Context, q sq.SelectBuilder, limit int) ([]uuid.UUID, error) {
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list review states: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan card id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate card ids: %w", err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}
