package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashlearn/scheduler/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a bare user row and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	_, err := pool.Exec(context.Background(), `INSERT INTO users (id) VALUES ($1)`, userID)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return userID
}

// SeedDeck creates a deck for the user and returns the filled domain.Deck.
func SeedDeck(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Deck {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	deck := domain.Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "deck-" + uniqueSuffix(),
		CreatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO decks (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		deck.ID, deck.UserID, deck.Name, deck.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDeck: %v", err)
	}
	return deck
}

// SeedCard creates a card in the deck and returns the filled domain.Card.
func SeedCard(t *testing.T, pool *pgxpool.Pool, deckID uuid.UUID) domain.Card {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	card := domain.Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		CreatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO cards (id, deck_id, created_at) VALUES ($1, $2, $3)`,
		card.ID, card.DeckID, card.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCard: %v", err)
	}
	return card
}

// SeedGoal creates a goal linked to the given decks and returns the filled
// domain.Goal.
func SeedGoal(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, deckIDs ...uuid.UUID) domain.Goal {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	goal := domain.Goal{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "goal-" + uniqueSuffix(),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO goals (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		goal.ID, goal.UserID, goal.Name, goal.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGoal: %v", err)
	}

	for _, deckID := range deckIDs {
		_, err := pool.Exec(ctx,
			`INSERT INTO goal_decks (goal_id, deck_id) VALUES ($1, $2)`,
			goal.ID, deckID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedGoal link deck: %v", err)
		}
	}
	return goal
}

// SeedReviewState inserts a review state with next_review_at at the given
// time and returns it.
func SeedReviewState(t *testing.T, pool *pgxpool.Pool, userID, cardID uuid.UUID, nextReviewAt time.Time) domain.ReviewState {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	last := nextReviewAt.AddDate(0, 0, -1)
	st := domain.ReviewState{
		UserID:         userID,
		CardID:         cardID,
		IntervalDays:   1,
		EaseFactor:     2.5,
		Repetitions:    1,
		LastReviewedAt: &last,
		NextReviewAt:   &nextReviewAt,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO review_states (user_id, card_id, interval_days, ease_factor, stability, difficulty,
		 repetitions, last_reviewed_at, next_review_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		st.UserID, st.CardID, st.IntervalDays, st.EaseFactor, st.Stability, st.Difficulty,
		st.Repetitions, st.LastReviewedAt, st.NextReviewAt, st.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReviewState: %v", err)
	}
	return st
}
