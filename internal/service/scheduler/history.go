package scheduler

import (
	"context"
	"fmt"

	"github.com/flashlearn/scheduler/internal/domain"
)

const defaultHistoryLimit = 50

// History returns a card's review log entries, newest first, with the total
// count for pagination.
func (s *Service) History(ctx context.Context, input HistoryInput) ([]*domain.ReviewLogEntry, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	entries, total, err := s.logs.ListByCard(ctx, input.UserID, input.CardID, limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list review log: %w", err)
	}
	return entries, total, nil
}
