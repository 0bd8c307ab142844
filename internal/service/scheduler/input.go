package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/flashlearn/scheduler/internal/domain"
)

// SubmitReviewInput holds the parameters for recording a review.
type SubmitReviewInput struct {
	UserID uuid.UUID
	CardID uuid.UUID
	// Quality is the review score. Out-of-range values are clamped to
	// [0, 5], not rejected.
	Quality int
	// ReviewedAt is the moment the review happened. Zero means "now".
	ReviewedAt time.Time
}

// Validate checks all fields and collects all errors.
func (i *SubmitReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SelectDueInput holds the parameters for listing due cards.
type SelectDueInput struct {
	UserID uuid.UUID
	Scope  domain.Scope
	// Limit caps the result after ordering. 0 means no limit.
	Limit int
	// AsOf is the due cutoff. Zero means "now".
	AsOf time.Time
}

// Validate checks all fields and collects all errors.
func (i *SelectDueInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "exactly one of deck_id or goal_id is required"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// BuildSessionInput holds the parameters for assembling a quiz session.
type BuildSessionInput struct {
	UserID uuid.UUID
	Scope  domain.Scope
	Mode   domain.SessionMode
	// Count is the target session size. 0 means "everything the mode
	// selects".
	Count   int
	Shuffle bool
}

// Validate checks all fields and collects all errors.
func (i *BuildSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "exactly one of deck_id or goal_id is required"})
	}
	if !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be REVIEW_DUE, ALL, or NEW"})
	}
	if i.Count < 0 {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CountTodayInput holds the parameters for per-deck daily review counts.
type CountTodayInput struct {
	UserID uuid.UUID
	Scope  domain.Scope
	// Timezone is an IANA zone name defining the local day boundaries.
	// Empty or invalid falls back to UTC.
	Timezone string
}

// Validate checks all fields and collects all errors.
func (i *CountTodayInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "exactly one of deck_id or goal_id is required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// HistoryInput holds the parameters for fetching a card's review history.
type HistoryInput struct {
	UserID uuid.UUID
	CardID uuid.UUID
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *HistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// StatsInput holds the parameters for the per-user review dashboard.
type StatsInput struct {
	UserID   uuid.UUID
	Timezone string
}

// Validate checks all fields and collects all errors.
func (i *StatsInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ActivityInput holds the parameters for the daily review activity series.
type ActivityInput struct {
	UserID uuid.UUID
	// Days is the length of the series, counting back from today inclusive.
	Days     int
	Timezone string
}

// Validate checks all fields and collects all errors.
func (i *ActivityInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.Days < 1 || i.Days > 366 {
		errs = append(errs, domain.FieldError{Field: "days", Message: "must be between 1 and 366"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
