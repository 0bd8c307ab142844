package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flashlearn/scheduler/internal/domain"
	"github.com/flashlearn/scheduler/internal/service/scheduler/algorithm"
)

// SubmitReview records a graded review: it applies the update function to the
// card's current state and appends a log entry, both inside one transaction.
// The state row is locked for the duration, so concurrent submissions for the
// same (user, card) pair apply one after another; submissions for different
// cards never block each other.
func (s *Service) SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.ReviewLogEntry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.catalog.CardExists(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("check card: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("card %s: %w", input.CardID, domain.ErrNotFound)
	}

	quality := domain.ClampQuality(input.Quality)

	var entry *domain.ReviewLogEntry

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// A FOR UPDATE read of a missing row locks nothing, which would let
		// two first-ever reviews race. Ensure creates the row so the locked
		// read below always has something to lock.
		if ensureErr := s.states.Ensure(txCtx, input.UserID, input.CardID); ensureErr != nil {
			return fmt.Errorf("ensure review state: %w", ensureErr)
		}

		state, getErr := s.states.GetForUpdate(txCtx, input.UserID, input.CardID)
		if getErr != nil {
			return fmt.Errorf("get review state: %w", getErr)
		}

		// Resolve the timestamp after the lock: with a zero input the clock
		// is read under the lock, so serialized submissions get monotonic
		// timestamps.
		reviewedAt := input.ReviewedAt
		if reviewedAt.IsZero() {
			reviewedAt = s.clock.Now()
		}

		// A nil LastReviewedAt marks a never-reviewed card, including the
		// placeholder row Ensure just created.
		prev := s.updater.Initial()
		elapsedDays := 0.0
		if state.LastReviewedAt != nil {
			prev = algorithm.State{
				IntervalDays: state.IntervalDays,
				EaseFactor:   state.EaseFactor,
				Stability:    state.Stability,
				Difficulty:   state.Difficulty,
				Repetitions:  state.Repetitions,
			}
			elapsedDays = reviewedAt.Sub(*state.LastReviewedAt).Hours() / 24
			if elapsedDays < 0 {
				return domain.NewValidationError("reviewed_at", "must not precede the previous review")
			}
		}

		next := s.updater.Update(prev, quality, elapsedDays)

		nextReviewAt := reviewedAt.Add(time.Duration(next.IntervalDays * 24 * float64(time.Hour)))
		newState := &domain.ReviewState{
			UserID:         input.UserID,
			CardID:         input.CardID,
			IntervalDays:   next.IntervalDays,
			EaseFactor:     next.EaseFactor,
			Stability:      next.Stability,
			Difficulty:     next.Difficulty,
			Repetitions:    next.Repetitions,
			LastReviewedAt: &reviewedAt,
			NextReviewAt:   &nextReviewAt,
			UpdatedAt:      s.clock.Now(),
		}

		if upsertErr := s.states.Upsert(txCtx, newState); upsertErr != nil {
			return fmt.Errorf("upsert review state: %w", upsertErr)
		}

		var appendErr error
		entry, appendErr = s.logs.Append(txCtx, &domain.ReviewLogEntry{
			ID:           uuid.New(),
			UserID:       input.UserID,
			CardID:       input.CardID,
			Quality:      quality,
			IntervalDays: next.IntervalDays,
			EaseFactor:   next.EaseFactor,
			Stability:    next.Stability,
			Difficulty:   next.Difficulty,
			Repetitions:  next.Repetitions,
			ReviewedAt:   reviewedAt,
		})
		if appendErr != nil {
			return fmt.Errorf("append review log: %w", appendErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "review recorded",
		slog.String("user_id", input.UserID.String()),
		slog.String("card_id", input.CardID.String()),
		slog.Int("quality", quality),
		slog.Float64("interval_days", entry.IntervalDays),
		slog.Int("repetitions", entry.Repetitions),
	)

	return entry, nil
}
