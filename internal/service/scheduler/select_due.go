package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SelectDue lists the card IDs in scope that are due for review, ordered by
// ascending due time with never-reviewed cards first and card ID as the tie
// break. The limit applies after ordering.
func (s *Service) SelectDue(ctx context.Context, input SelectDueInput) ([]uuid.UUID, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = s.clock.Now()
	}

	cardIDs, err := s.resolveScopeCards(ctx, input.Scope)
	if err != nil {
		return nil, fmt.Errorf("resolve scope: %w", err)
	}
	if len(cardIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	due, err := s.states.ListDue(ctx, input.UserID, cardIDs, asOf, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("list due: %w", err)
	}
	return due, nil
}
