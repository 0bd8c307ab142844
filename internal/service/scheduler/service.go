// Package scheduler implements the spaced-repetition scheduling engine:
// review submission, due-card selection, quiz session building, and review
// aggregation. All mutable state lives behind the repository interfaces;
// the service itself is stateless and request-scoped.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flashlearn/scheduler/internal/domain"
	"github.com/flashlearn/scheduler/internal/service/scheduler/algorithm"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type stateRepo interface {
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)
	// Ensure creates an empty state row for the pair if none exists. It must
	// precede GetForUpdate in the same transaction: a FOR UPDATE read of an
	// absent row takes no lock, so without the row two first-ever reviews
	// could race.
	Ensure(ctx context.Context, userID, cardID uuid.UUID) error
	// GetForUpdate locks the state row for the duration of the enclosing
	// transaction. Concurrent submissions for the same (user, card) pair
	// serialize on this lock; different pairs proceed independently.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)
	Upsert(ctx context.Context, state *domain.ReviewState) error
	// ListDue returns card IDs in scope that are due at asOf, ordered by
	// ascending next_review_at with never-reviewed cards first, ties broken
	// by card ID. limit <= 0 means no limit; truncation happens after
	// ordering.
	ListDue(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, asOf time.Time, limit int) ([]uuid.UUID, error)
	ListNever(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error)
	ListAllOrdered(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error)
	CountDue(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error)
	CountNever(ctx context.Context, userID uuid.UUID) (int, error)
}

type logRepo interface {
	Append(ctx context.Context, entry *domain.ReviewLogEntry) (*domain.ReviewLogEntry, error)
	ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit, offset int) ([]*domain.ReviewLogEntry, int, error)
	CountByDeckBetween(ctx context.Context, userID uuid.UUID, deckIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error)
	CountBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	GradeCountsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.GradeCounts, error)
	DailyCounts(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error)
}

type catalogRepo interface {
	CardExists(ctx context.Context, cardID uuid.UUID) (bool, error)
	DeckCards(ctx context.Context, deckID uuid.UUID) ([]uuid.UUID, error)
	GoalDecks(ctx context.Context, goalID uuid.UUID) ([]uuid.UUID, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the scheduling engine business logic.
type Service struct {
	states  stateRepo
	logs    logRepo
	catalog catalogRepo
	tx      txManager
	clock   clock
	updater algorithm.Updater
	log     *slog.Logger
}

// NewService creates a scheduler service using the given update function.
func NewService(
	log *slog.Logger,
	states stateRepo,
	logs logRepo,
	catalog catalogRepo,
	tx txManager,
	updater algorithm.Updater,
) *Service {
	return &Service{
		states:  states,
		logs:    logs,
		catalog: catalog,
		tx:      tx,
		clock:   systemClock{},
		updater: updater,
		log:     log.With("service", "scheduler"),
	}
}

// resolveScopeCards expands a scope into the card IDs it covers. Goal scopes
// deduplicate cards linked through more than one deck.
func (s *Service) resolveScopeCards(ctx context.Context, scope domain.Scope) ([]uuid.UUID, error) {
	if scope.DeckID != nil {
		return s.catalog.DeckCards(ctx, *scope.DeckID)
	}

	deckIDs, err := s.catalog.GoalDecks(ctx, *scope.GoalID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	var cardIDs []uuid.UUID
	for _, deckID := range deckIDs {
		cards, err := s.catalog.DeckCards(ctx, deckID)
		if err != nil {
			return nil, err
		}
		for _, id := range cards {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			cardIDs = append(cardIDs, id)
		}
	}
	return cardIDs, nil
}

// resolveScopeDecks expands a scope into the deck IDs it covers.
func (s *Service) resolveScopeDecks(ctx context.Context, scope domain.Scope) ([]uuid.UUID, error) {
	if scope.DeckID != nil {
		return []uuid.UUID{*scope.DeckID}, nil
	}
	return s.catalog.GoalDecks(ctx, *scope.GoalID)
}
