package domain

import "github.com/google/uuid"

// CustomField is a user-defined title/value pair shown on the profile.
// A user owns at most five of them; the limit lives in the service layer.
type CustomField struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Value     string    `json:"value"`
	IsVisible bool      `json:"is_visible"`
	OwnerID   string    `json:"owner_id"`
}
