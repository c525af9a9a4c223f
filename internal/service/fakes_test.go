package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/mvidal0/nexo/internal/domain"
	"github.com/mvidal0/nexo/internal/identity"
)

// In-memory repositories for service tests. They copy on read and write so
// tests only observe state that actually went through Update.

type fakeUserRepo struct {
	users     map[string]domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.users[user.ID]; exists {
		return errors.New("duplicate key")
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UsernameTakenByOther(_ context.Context, username, userID string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username && u.ID != userID && u.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.New("no such user")
	}
	r.users[user.ID] = *user
	return nil
}

type fakeCustomFieldRepo struct {
	fields map[uuid.UUID]domain.CustomField
}

func newFakeCustomFieldRepo() *fakeCustomFieldRepo {
	return &fakeCustomFieldRepo{fields: map[uuid.UUID]domain.CustomField{}}
}

func (r *fakeCustomFieldRepo) Create(_ context.Context, field *domain.CustomField) error {
	r.fields[field.ID] = *field
	return nil
}

func (r *fakeCustomFieldRepo) GetByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) (*domain.CustomField, error) {
	f, ok := r.fields[id]
	if !ok || f.OwnerID != ownerID {
		return nil, nil
	}
	copied := f
	return &copied, nil
}

func (r *fakeCustomFieldRepo) Update(_ context.Context, field *domain.CustomField) error {
	existing, ok := r.fields[field.ID]
	if !ok || existing.OwnerID != field.OwnerID {
		return nil
	}
	r.fields[field.ID] = *field
	return nil
}

func (r *fakeCustomFieldRepo) DeleteByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) (bool, error) {
	f, ok := r.fields[id]
	if !ok || f.OwnerID != ownerID {
		return false, nil
	}
	delete(r.fields, id)
	return true, nil
}

func (r *fakeCustomFieldRepo) CountByOwner(_ context.Context, ownerID string) (int, error) {
	count := 0
	for _, f := range r.fields {
		if f.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCustomFieldRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.CustomField, error) {
	var fields []domain.CustomField
	for _, f := range r.fields {
		if f.OwnerID == ownerID {
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].ID.String() < fields[j].ID.String()
	})
	return fields, nil
}

type fakeBadgeRepo struct {
	badges map[uuid.UUID]domain.Badge
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{badges: map[uuid.UUID]domain.Badge{}}
}

func (r *fakeBadgeRepo) Create(_ context.Context, badge *domain.Badge) error {
	r.badges[badge.ID] = *badge
	return nil
}

func (r *fakeBadgeRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Badge, error) {
	for _, b := range r.badges {
		if b.OwnerID == ownerID {
			copied := b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBadgeRepo) Update(_ context.Context, badge *domain.Badge) error {
	if _, ok := r.badges[badge.ID]; !ok {
		return errors.New("no such badge")
	}
	r.badges[badge.ID] = *badge
	return nil
}

func (r *fakeBadgeRepo) countByOwner(ownerID string) int {
	count := 0
	for _, b := range r.badges {
		if b.OwnerID == ownerID {
			count++
		}
	}
	return count
}

type fakePostRepo struct {
	posts []domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{}
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) ListByAuthor(_ context.Context, authorID string) ([]domain.Post, error) {
	var posts []domain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	sortPostsDesc(posts)
	return posts, nil
}

func (r *fakePostRepo) ListFeed(_ context.Context, before *uuid.UUID, limit int) ([]domain.Post, error) {
	posts := make([]domain.Post, len(r.posts))
	copy(posts, r.posts)
	sortPostsDesc(posts)

	if before != nil {
		cut := -1
		for i, p := range posts {
			if p.ID == *before {
				cut = i
				break
			}
		}
		if cut >= 0 {
			posts = posts[cut+1:]
		}
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func sortPostsDesc(posts []domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

type fakeIdentityClient struct {
	subject    string
	signUpErr  error
	token      string
	signInErr  error
	signUpCall int
}

func (c *fakeIdentityClient) SignUp(_ context.Context, email, password string, meta identity.SignUpMetadata) (string, error) {
	c.signUpCall++
	if c.signUpErr != nil {
		return "", c.signUpErr
	}
	return c.subject, nil
}

func (c *fakeIdentityClient) SignInWithPassword(_ context.Context, email, password string) (string, error) {
	if c.signInErr != nil {
		return "", c.signInErr
	}
	return c.token, nil
}
