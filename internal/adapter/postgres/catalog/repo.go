// Package catalog implements the deck/card/goal catalog repository using
// PostgreSQL. The scheduler only reads scope membership from here; the write
// operations exist for provisioning and tests. Deleting a deck or card
// cascades to review states and logs at the schema level.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashlearn/scheduler/internal/adapter/postgres"
	"github.com/flashlearn/scheduler/internal/domain"
)

// Repo provides catalog persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const cardExistsSQL = `SELECT EXISTS(SELECT 1 FROM cards WHERE id = $1)`

const deckCardsSQL = `
SELECT id FROM cards WHERE deck_id = $1 ORDER BY id`

const goalDecksSQL = `
SELECT deck_id FROM goal_decks WHERE goal_id = $1 ORDER BY deck_id`

const userDecksSQL = `
SELECT id, user_id, name, created_at FROM decks WHERE user_id = $1 ORDER BY created_at, id`

const createUserSQL = `INSERT INTO users (id) VALUES ($1)`

const createDeckSQL = `
INSERT INTO decks (id, user_id, name, created_at)
VALUES ($1, $2, $3, $4)`

const createCardSQL = `
INSERT INTO cards (id, deck_id, created_at)
VALUES ($1, $2, $3)`

const createGoalSQL = `
INSERT INTO goals (id, user_id, name, created_at)
VALUES ($1, $2, $3, $4)`

const linkGoalDeckSQL = `
INSERT INTO goal_decks (goal_id, deck_id) VALUES ($1, $2)`

const deleteDeckSQL = `DELETE FROM decks WHERE id = $1`

const deleteCardSQL = `DELETE FROM cards WHERE id = $1`

// CardExists reports whether a card row exists.
func (r *Repo) CardExists(ctx context.Context, cardID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, cardExistsSQL, cardID).Scan(&exists); err != nil {
		return false, fmt.Errorf("card exists: %w", err)
	}
	return exists, nil
}

// DeckCards returns the IDs of all cards in a deck, ordered by card ID.
func (r *Repo) DeckCards(ctx context.Context, deckID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx, deckCardsSQL, deckID, "deck cards")
}

// GoalDecks returns the IDs of all decks linked to a goal.
func (r *Repo) GoalDecks(ctx context.Context, goalID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx, goalDecksSQL, goalID, "goal decks")
}

// UserDecks returns all of a user's decks.
func (r *Repo) UserDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, userDecksSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list user decks: %w", err)
	}
	defer rows.Close()

	var decks []*domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		decks = append(decks, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decks: %w", err)
	}

	if decks == nil {
		decks = []*domain.Deck{}
	}

	return decks, nil
}

// CreateUser inserts a user row.
func (r *Repo) CreateUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, createUserSQL, userID); err != nil {
		return postgres.MapError(err, "user", userID)
	}
	return nil
}

// CreateDeck inserts a deck row.
func (r *Repo) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, createDeckSQL, deck.ID, deck.UserID, deck.Name, deck.CreatedAt); err != nil {
		return postgres.MapError(err, "deck", deck.ID)
	}
	return nil
}

// CreateCard inserts a card row.
func (r *Repo) CreateCard(ctx context.Context, card *domain.Card) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, createCardSQL, card.ID, card.DeckID, card.CreatedAt); err != nil {
		return postgres.MapError(err, "card", card.ID)
	}
	return nil
}

// CreateGoal inserts a goal row.
func (r *Repo) CreateGoal(ctx context.Context, goal *domain.Goal) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, createGoalSQL, goal.ID, goal.UserID, goal.Name, goal.CreatedAt); err != nil {
		return postgres.MapError(err, "goal", goal.ID)
	}
	return nil
}

// LinkGoalDeck links a deck to a goal. Linking the same pair twice returns
// domain.ErrAlreadyExists.
func (r *Repo) LinkGoalDeck(ctx context.Context, goalID, deckID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, linkGoalDeckSQL, goalID, deckID); err != nil {
		return postgres.MapError(err, "goal_deck", goalID)
	}
	return nil
}

// DeleteDeck removes a deck. The cascade removes its cards and their review
// states and logs. Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	return r.deleteOne(ctx, deleteDeckSQL, deckID, "deck")
}

// DeleteCard removes a card and, via cascade, its review state and logs.
// Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return r.deleteOne(ctx, deleteCardSQL, cardID, "card")
}

func (r *Repo) deleteOne(ctx context.Context, query string, id uuid.UUID, entity string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, query, id)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) listIDs(ctx context.Context, query string, arg uuid.UUID, what string) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", what, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}
