package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/flashlearn/scheduler/internal/domain"
)

// BuildSession assembles an ordered quiz session for the given scope and
// mode. The count truncates after the mode's ordering; shuffling, when
// requested, happens after truncation so the session still contains the
// most urgent cards.
func (s *Service) BuildSession(ctx context.Context, input BuildSessionInput) (*domain.QuizSession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cardIDs, err := s.resolveScopeCards(ctx, input.Scope)
	if err != nil {
		return nil, fmt.Errorf("resolve scope: %w", err)
	}

	var selected []uuid.UUID
	if len(cardIDs) > 0 {
		switch input.Mode {
		case domain.SessionModeReviewDue:
			selected, err = s.states.ListDue(ctx, input.UserID, cardIDs, s.clock.Now(), input.Count)
		case domain.SessionModeNew:
			selected, err = s.states.ListNever(ctx, input.UserID, cardIDs, input.Count)
		default:
			selected, err = s.states.ListAllOrdered(ctx, input.UserID, cardIDs, input.Count)
		}
		if err != nil {
			return nil, fmt.Errorf("select cards for mode %s: %w", input.Mode, err)
		}
	}
	if selected == nil {
		selected = []uuid.UUID{}
	}

	if input.Shuffle && len(selected) > 1 {
		rng := rand.New(rand.NewSource(s.clock.Now().UnixNano()))
		rng.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}

	session := &domain.QuizSession{
		UserID:   input.UserID,
		Scope:    input.Scope,
		Mode:     input.Mode,
		Count:    input.Count,
		Shuffled: input.Shuffle,
		CardIDs:  selected,
	}

	s.log.InfoContext(ctx, "session built",
		slog.String("user_id", input.UserID.String()),
		slog.String("mode", input.Mode.String()),
		slog.Int("cards", session.Len()),
	)

	return session, nil
}
