package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mvidal0/nexo/internal/domain"
)

// All lookups treat absence as a normal result and return (nil, nil).
// Soft-deleted users are invisible to every query here.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UsernameTakenByOther(ctx context.Context, username, userID string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
}

type CustomFieldRepository interface {
	Create(ctx context.Context, field *domain.CustomField) error
	GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*domain.CustomField, error)
	Update(ctx context.Context, field *domain.CustomField) error
	DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (bool, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.CustomField, error)
}

type BadgeRepository interface {
	Create(ctx context.Context, badge *domain.Badge) error
	GetByOwner(ctx context.Context, ownerID string) (*domain.Badge, error)
	Update(ctx context.Context, badge *domain.Badge) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	ListFeed(ctx context.Context, before *uuid.UUID, limit int) ([]domain.Post, error)
}
