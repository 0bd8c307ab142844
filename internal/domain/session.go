package domain

import (
	"github.com/google/uuid"
)

// Scope addresses either a single deck or all decks linked to a goal.
// Exactly one of DeckID/GoalID must be set.
type Scope struct {
	DeckID *uuid.UUID
	GoalID *uuid.UUID
}

// DeckScope builds a single-deck scope.
func DeckScope(deckID uuid.UUID) Scope { return Scope{DeckID: &deckID} }

// GoalScope builds a goal scope.
func GoalScope(goalID uuid.UUID) Scope { return Scope{GoalID: &goalID} }

// IsValid reports whether exactly one scope target is set.
func (s Scope) IsValid() bool {
	return (s.DeckID != nil) != (s.GoalID != nil)
}

// QuizSession is an ordered selection of cards for one sitting. It is a view
// over the scheduling state, not a persisted entity: rebuilding it with the
// same inputs and clock yields the same selection.
type QuizSession struct {
	UserID   uuid.UUID
	Scope    Scope
	Mode     SessionMode
	Count    int
	Shuffled bool
	CardIDs  []uuid.UUID
}

// Len returns the number of selected cards.
func (q *QuizSession) Len() int { return len(q.CardIDs) }
