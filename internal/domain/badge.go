package domain

import "github.com/google/uuid"

// Badge is a single display title + theme, at most one per user.
type Badge struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Theme   string    `json:"theme"`
	OwnerID string    `json:"owner_id"`
}
