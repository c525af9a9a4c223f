package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields
	AuthorUsername string  `json:"author_username,omitempty"`
	AuthorPhotoURL *string `json:"author_photo_url,omitempty"`
}
