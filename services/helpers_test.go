package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/database/inmemory"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db     database.Database
	svc    Services
	alice  *models.User
	bob    *models.User
	travel *models.Category
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	ctx := context.Background()
	db := inmemory.New()

	alice := &models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Users().Add(ctx, alice))
	bob := &models.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, db.Users().Add(ctx, bob))
	travel := &models.Category{Title: "Travel", Description: "Trips", Slug: "travel", IsPublished: true}
	require.NoError(t, db.Categories().Add(ctx, travel))

	return testEnv{
		db:     db,
		svc:    New(db, WithClock(func() time.Time { return now })),
		alice:  alice,
		bob:    bob,
		travel: travel,
	}
}

func viewerOf(user *models.User) models.Viewer {
	return models.Viewer{UserID: user.ID, Username: user.Username}
}

// addPost stores a public post by author, adjusted by opts.
func (e testEnv) addPost(t *testing.T, author *models.User, opts ...func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "A post",
		Text:        "Body",
		PubDate:     now.Add(-time.Hour),
		AuthorID:    author.ID,
		IsPublished: true,
	}
	for _, opt := range opts {
		opt(post)
	}
	require.NoError(t, e.db.Posts().Add(context.Background(), post))
	return post
}

func (e testEnv) addComment(t *testing.T, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Text: text, AuthorID: author.ID, PostID: post.ID, IsPublished: true, CreatedAt: now}
	require.NoError(t, e.db.Comments().Add(context.Background(), comment))
	return comment
}

func hidden(p *models.Post) { p.IsPublished = false }

func scheduled(p *models.Post) { p.PubDate = now.Add(24 * time.Hour) }

func inCategory(c *models.Category) func(*models.Post) {
	return func(p *models.Post) { p.CategoryID = &c.ID }
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var apiErr *errs.ApiErr
	require.True(t, errors.As(err, &apiErr), "expected an ApiErr, got %v", err)
	require.True(t, errs.IsValidationError(err), "expected a validation error, got %v", err)
	return apiErr.Fields
}
