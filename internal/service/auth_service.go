package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/mvidal0/nexo/internal/cache"
	"github.com/mvidal0/nexo/internal/domain"
	"github.com/mvidal0/nexo/internal/identity"
	"github.com/mvidal0/nexo/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrUserNotFound = errors.New("user not found")
)

// IdentityClient is the slice of the provider API the auth flow needs.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string, meta identity.SignUpMetadata) (string, error)
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
}

type AuthService struct {
	idp       IdentityClient
	userRepo  repository.UserRepository
	fieldRepo repository.CustomFieldRepository
	badgeRepo repository.BadgeRepository
	postRepo  repository.PostRepository
	profiles  *cache.ProfileCache
}

func NewAuthService(
	idp IdentityClient,
	userRepo repository.UserRepository,
	fieldRepo repository.CustomFieldRepository,
	badgeRepo repository.BadgeRepository,
	postRepo repository.PostRepository,
) *AuthService {
	return &AuthService{
		idp:       idp,
		userRepo:  userRepo,
		fieldRepo: fieldRepo,
		badgeRepo: badgeRepo,
		postRepo:  postRepo,
	}
}

// SetProfileCache sets the profile read cache (optional dependency).
func (s *AuthService) SetProfileCache(c *cache.ProfileCache) {
	s.profiles = c
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// SyncResult reports whether the reconciliation created a local account or
// found one already in place.
type SyncResult struct {
	Created bool         `json:"created"`
	User    *domain.User `json:"user"`
}

// Register creates the account at the identity provider first, then mirrors
// it locally under the provider's subject id. If the local insert fails the
// provider account still exists; there is no compensating rollback, and a
// later Sync call repairs the missing mirror.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	subject, err := s.idp.SignUp(ctx, input.Email, input.Password, identity.SignUpMetadata{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailRegistered) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("identity provider signup: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:        subject,
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      "USER",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating local user after provider signup: %w", err)
	}

	return user, nil
}

// Login is a passthrough to the provider's password grant.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	token, err := s.idp.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, ErrInvalidCreds
		}
		return nil, fmt.Errorf("identity provider login: %w", err)
	}

	return &LoginResponse{AccessToken: token}, nil
}

// SyncIdentity reconciles a verified external identity with the local store.
// Repeated calls for the same subject are no-ops, which also makes this the
// repair path for accounts whose local mirror failed to land on register.
func (s *AuthService) SyncIdentity(ctx context.Context, ident *identity.Identity) (*SyncResult, error) {
	existing, err := s.userRepo.GetByID(ctx, ident.Subject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &SyncResult{Created: false, User: existing}, nil
	}

	firstName, lastName := splitFullName(ident.Metadata.FullName)

	var photoURL *string
	if ident.Metadata.AvatarURL != "" {
		avatar := ident.Metadata.AvatarURL
		photoURL = &avatar
	}

	now := time.Now()
	user := &domain.User{
		ID:        ident.Subject,
		Email:     ident.Email,
		Username:  deriveUsername(ident.Email),
		FirstName: firstName,
		LastName:  lastName,
		PhotoURL:  photoURL,
		Role:      "USER",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user from external identity: %w", err)
	}

	return &SyncResult{Created: true, User: user}, nil
}

// GetProfile loads a user with fields, badge and posts. A subject without a
// local account is treated as unauthenticated, not as an empty profile.
func (s *AuthService) GetProfile(ctx context.Context, subject string) (*domain.Profile, error) {
	if s.profiles != nil {
		if cached := s.profiles.Get(ctx, subject); cached != nil {
			return cached, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields, err := s.fieldRepo.ListByOwner(ctx, subject)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = []domain.CustomField{}
	}

	badge, err := s.badgeRepo.GetByOwner(ctx, subject)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, subject)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	profile := &domain.Profile{
		User:         user,
		CustomFields: fields,
		Badge:        badge,
		Posts:        posts,
	}

	if s.profiles != nil {
		s.profiles.Set(ctx, subject, profile)
	}

	return profile, nil
}

var usernameStrip = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// deriveUsername builds a username from the email's local part plus a random
// 4-digit suffix. The derivation is not re-checked against existing rows;
// the unique index is the backstop.
func deriveUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	base := usernameStrip.ReplaceAllString(local, "")

	username := fmt.Sprintf("%s_%d", base, 1000+rand.IntN(9000))
	if len(username) > 50 {
		username = username[:50]
	}
	return username
}

// splitFullName maps a provider full name onto first/last, falling back to
// the placeholders used for federated accounts with no usable name.
func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	switch {
	case len(parts) == 0:
		return "Google", "User"
	case len(parts) == 1:
		return parts[0], "User"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
