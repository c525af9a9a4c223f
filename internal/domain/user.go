package domain

import "time"

// User mirrors an account at the identity provider. ID is the provider's
// subject identifier and is never generated locally.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     *string    `json:"phone,omitempty"`
	Bio       *string    `json:"bio,omitempty"`
	PhotoURL  *string    `json:"photo_url,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Profile is the full view of a user: the account itself plus its
// custom fields, badge and posts (newest first).
type Profile struct {
	User         *User         `json:"user"`
	CustomFields []CustomField `json:"custom_fields"`
	Badge        *Badge        `json:"badge,omitempty"`
	Posts        []Post        `json:"posts"`
}
