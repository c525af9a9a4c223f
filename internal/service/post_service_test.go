package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvidal0/nexo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts(repo *fakePostRepo, authorID string, n int) []uuid.UUID {
	base := time.Now().Add(-time.Hour)
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		ids[i] = id
		repo.posts = append(repo.posts, domain.Post{
			ID:        id,
			Content:   "post",
			AuthorID:  authorID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return ids
}

func TestCreatePost(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewPostService(postRepo)

	post, err := svc.Create(context.Background(), "author-1", CreatePostInput{Content: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, "author-1", post.AuthorID)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestFeedNewestFirstWithCursor(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewPostService(postRepo)
	ids := seedPosts(postRepo, "author-1", 3)

	page, err := svc.Feed(context.Background(), nil, 2)
	require.NoError(t, err)

	require.Len(t, page.Posts, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, ids[2], page.Posts[0].ID)
	assert.Equal(t, ids[1], page.Posts[1].ID)

	cursor := page.Posts[1].ID
	next, err := svc.Feed(context.Background(), &cursor, 2)
	require.NoError(t, err)

	require.Len(t, next.Posts, 1)
	assert.False(t, next.HasMore)
	assert.Equal(t, ids[0], next.Posts[0].ID)
}

func TestFeedEmpty(t *testing.T) {
	svc := NewPostService(newFakePostRepo())

	page, err := svc.Feed(context.Background(), nil, 0)
	require.NoError(t, err)

	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasMore)
}
