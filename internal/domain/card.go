package domain

import (
	"time"

	"github.com/google/uuid"
)

// Card is a learnable unit belonging to a deck. Its content is opaque to the
// scheduler; only identity and deck membership matter here.
type Card struct {
	ID        uuid.UUID
	DeckID    uuid.UUID
	CreatedAt time.Time
}

// Deck groups cards for one user.
type Deck struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Goal aggregates several decks into one study target. Which decks belong to
// a goal is maintained by the catalog, not by the scheduler.
type Goal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}
