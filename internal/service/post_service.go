package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mvidal0/nexo/internal/cache"
	"github.com/mvidal0/nexo/internal/domain"
	"github.com/mvidal0/nexo/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	profiles *cache.ProfileCache
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// SetProfileCache sets the profile read cache (optional dependency).
func (s *PostService) SetProfileCache(c *cache.ProfileCache) {
	s.profiles = c
}

type CreatePostInput struct {
	Content string `json:"content"`
}

type FeedResponse struct {
	Posts   []domain.Post `json:"posts"`
	HasMore bool          `json:"has_more"`
}

func (s *PostService) Create(ctx context.Context, authorID string, input CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.New(),
		Content:   input.Content,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	// Re-read to pick up the joined author info
	full, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if s.profiles != nil {
		s.profiles.Invalidate(ctx, authorID)
	}

	return full, nil
}

func (s *PostService) Feed(ctx context.Context, before *uuid.UUID, limit int) (*FeedResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	// Fetch limit+1 to know whether there is more
	posts, err := s.postRepo.ListFeed(ctx, before, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}

	if posts == nil {
		posts = []domain.Post{}
	}

	return &FeedResponse{
		Posts:   posts,
		HasMore: hasMore,
	}, nil
}
