package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mvidal0/nexo/internal/cache"
	"github.com/mvidal0/nexo/internal/domain"
	"github.com/mvidal0/nexo/internal/repository"
)

var (
	ErrFieldLimit = errors.New("custom field limit reached")
	// ErrFieldNotFound covers both a missing field and someone else's field;
	// callers must not be able to tell the two apart.
	ErrFieldNotFound = errors.New("custom field not found")
	ErrUsernameTaken = errors.New("username already taken")
)

const maxCustomFields = 5

type ProfileService struct {
	userRepo  repository.UserRepository
	fieldRepo repository.CustomFieldRepository
	badgeRepo repository.BadgeRepository
	profiles  *cache.ProfileCache
}

func NewProfileService(
	userRepo repository.UserRepository,
	fieldRepo repository.CustomFieldRepository,
	badgeRepo repository.BadgeRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:  userRepo,
		fieldRepo: fieldRepo,
		badgeRepo: badgeRepo,
	}
}

// SetProfileCache sets the profile read cache (optional dependency).
func (s *ProfileService) SetProfileCache(c *cache.ProfileCache) {
	s.profiles = c
}

func (s *ProfileService) AddCustomField(ctx context.Context, ownerID, title, value string) (*domain.CustomField, error) {
	count, err := s.fieldRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= maxCustomFields {
		return nil, ErrFieldLimit
	}

	field := &domain.CustomField{
		ID:        uuid.New(),
		Title:     title,
		Value:     value,
		IsVisible: true,
		OwnerID:   ownerID,
	}

	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, fmt.Errorf("creating custom field: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return field, nil
}

func (s *ProfileService) UpdateCustomField(ctx context.Context, ownerID string, fieldID uuid.UUID, title, value string) (*domain.CustomField, error) {
	field, err := s.fieldRepo.GetByIDAndOwner(ctx, fieldID, ownerID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, ErrFieldNotFound
	}

	field.Title = title
	field.Value = value
	if err := s.fieldRepo.Update(ctx, field); err != nil {
		return nil, fmt.Errorf("updating custom field: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return field, nil
}

// DeleteCustomField reports whether a row was removed. Deleting a field that
// is already gone is not an error.
func (s *ProfileService) DeleteCustomField(ctx context.Context, ownerID string, fieldID uuid.UUID) (bool, error) {
	deleted, err := s.fieldRepo.DeleteByIDAndOwner(ctx, fieldID, ownerID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.invalidate(ctx, ownerID)
	}
	return deleted, nil
}

// UpsertBadge updates the owner's badge in place or creates it, never a
// second row for the same owner.
func (s *ProfileService) UpsertBadge(ctx context.Context, ownerID, title, theme string) (*domain.Badge, error) {
	if theme == "" {
		theme = "default"
	}

	existing, err := s.badgeRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Title = title
		existing.Theme = theme
		if err := s.badgeRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("updating badge: %w", err)
		}
		s.invalidate(ctx, ownerID)
		return existing, nil
	}

	badge := &domain.Badge{
		ID:      uuid.New(),
		Title:   title,
		Theme:   theme,
		OwnerID: ownerID,
	}
	if err := s.badgeRepo.Create(ctx, badge); err != nil {
		return nil, fmt.Errorf("creating badge: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return badge, nil
}

type UpdateProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Username  *string `json:"username"`
	Phone     *string `json:"phone"`
}

// UpdateProfile applies a partial update: nil fields are left untouched.
func (s *ProfileService) UpdateProfile(ctx context.Context, ownerID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Username != nil && *input.Username != user.Username {
		taken, err := s.userRepo.UsernameTakenByOther(ctx, *input.Username, ownerID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = *input.Username
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return user, nil
}

func (s *ProfileService) invalidate(ctx context.Context, ownerID string) {
	if s.profiles != nil {
		s.profiles.Invalidate(ctx, ownerID)
	}
}
