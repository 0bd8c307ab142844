package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flashlearn/scheduler/internal/domain"
)

// Hand-written func-field mocks for the service's private interfaces. A nil
// func panics when called, which makes an unexpected call fail the test
// loudly.

type stateRepoMock struct {
	GetFunc            func(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)
	EnsureFunc         func(ctx context.Context, userID, cardID uuid.UUID) error
	GetForUpdateFunc   func(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)
	UpsertFunc         func(ctx context.Context, state *domain.ReviewState) error
	ListDueFunc        func(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, asOf time.Time, limit int) ([]uuid.UUID, error)
	ListNeverFunc      func(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error)
	ListAllOrderedFunc func(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error)
	CountDueFunc       func(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error)
	CountNeverFunc     func(ctx context.Context, userID uuid.UUID) (int, error)

	ensureCalls       int
	getForUpdateCalls int
	upsertCalls       int
	listDueCalls      int
}

func (m *stateRepoMock) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	return m.GetFunc(ctx, userID, cardID)
}

// Ensure succeeds by default; tests stub EnsureFunc only when they assert
// ordering or inject a failure.
func (m *stateRepoMock) Ensure(ctx context.Context, userID, cardID uuid.UUID) error {
	m.ensureCalls++
	if m.EnsureFunc != nil {
		return m.EnsureFunc(ctx, userID, cardID)
	}
	return nil
}

func (m *stateRepoMock) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	m.getForUpdateCalls++
	return m.GetForUpdateFunc(ctx, userID, cardID)
}

func (m *stateRepoMock) Upsert(ctx context.Context, state *domain.ReviewState) error {
	m.upsertCalls++
	return m.UpsertFunc(ctx, state)
}

func (m *stateRepoMock) ListDue(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, asOf time.Time, limit int) ([]uuid.UUID, error) {
	m.listDueCalls++
	return m.ListDueFunc(ctx, userID, cardIDs, asOf, limit)
}

func (m *stateRepoMock) ListNever(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	return m.ListNeverFunc(ctx, userID, cardIDs, limit)
}

func (m *stateRepoMock) ListAllOrdered(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	return m.ListAllOrderedFunc(ctx, userID, cardIDs, limit)
}

func (m *stateRepoMock) CountDue(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	return m.CountDueFunc(ctx, userID, asOf)
}

func (m *stateRepoMock) CountNever(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.CountNeverFunc(ctx, userID)
}

type logRepoMock struct {
	AppendFunc             func(ctx context.Context, entry *domain.ReviewLogEntry) (*domain.ReviewLogEntry, error)
	ListByCardFunc         func(ctx context.Context, userID, cardID uuid.UUID, limit, offset int) ([]*domain.ReviewLogEntry, int, error)
	CountByDeckBetweenFunc func(ctx context.Context, userID uuid.UUID, deckIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error)
	CountBetweenFunc       func(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	GradeCountsBetweenFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.GradeCounts, error)
	DailyCountsFunc        func(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error)

	appendCalls int
}

func (m *logRepoMock) Append(ctx context.Context, entry *domain.ReviewLogEntry) (*domain.ReviewLogEntry, error) {
	m.appendCalls++
	return m.AppendFunc(ctx, entry)
}

func (m *logRepoMock) ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit, offset int) ([]*domain.ReviewLogEntry, int, error) {
	return m.ListByCardFunc(ctx, userID, cardID, limit, offset)
}

func (m *logRepoMock) CountByDeckBetween(ctx context.Context, userID uuid.UUID, deckIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error) {
	return m.CountByDeckBetweenFunc(ctx, userID, deckIDs, from, to)
}

func (m *logRepoMock) CountBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	return m.CountBetweenFunc(ctx, userID, from, to)
}

func (m *logRepoMock) GradeCountsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.GradeCounts, error) {
	return m.GradeCountsBetweenFunc(ctx, userID, from, to)
}

func (m *logRepoMock) DailyCounts(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error) {
	return m.DailyCountsFunc(ctx, userID, from, to, timezone)
}

type catalogRepoMock struct {
	CardExistsFunc func(ctx context.Context, cardID uuid.UUID) (bool, error)
	DeckCardsFunc  func(ctx context.Context, deckID uuid.UUID) ([]uuid.UUID, error)
	GoalDecksFunc  func(ctx context.Context, goalID uuid.UUID) ([]uuid.UUID, error)
}

func (m *catalogRepoMock) CardExists(ctx context.Context, cardID uuid.UUID) (bool, error) {
	return m.CardExistsFunc(ctx, cardID)
}

func (m *catalogRepoMock) DeckCards(ctx context.Context, deckID uuid.UUID) ([]uuid.UUID, error) {
	return m.DeckCardsFunc(ctx, deckID)
}

func (m *catalogRepoMock) GoalDecks(ctx context.Context, goalID uuid.UUID) ([]uuid.UUID, error) {
	return m.GoalDecksFunc(ctx, goalID)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error

	runInTxCalls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	m.runInTxCalls++
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// fixedClock pins the service clock to a known instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
