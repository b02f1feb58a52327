package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rpupo63/blogicum-backend/config"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDatabase connects to TEST_DATABASE_URL, migrates it and empties
// every table. Tests are skipped when the variable is unset.
func openTestDatabase(t *testing.T) Database {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres repository tests")
	}

	cfg := config.FromMap(map[string]string{"DATABASE_URL": url})
	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE comments, posts, locations, categories, users RESTART IDENTITY CASCADE").Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func TestPostgres_PublicFeedAndCascades(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	author := &models.User{Username: "author", PasswordHash: "x", DateJoined: now}
	require.NoError(t, db.Users().Add(ctx, author))
	reader := &models.User{Username: "reader", PasswordHash: "x", DateJoined: now}
	require.NoError(t, db.Users().Add(ctx, reader))

	err := db.Users().Add(ctx, &models.User{Username: "author", PasswordHash: "x", DateJoined: now})
	assert.True(t, errs.IsAlreadyExists(err))

	published := &models.Category{Title: "Travel", Description: "d", Slug: "travel", IsPublished: true, CreatedAt: now}
	require.NoError(t, db.Categories().Add(ctx, published))
	hidden := &models.Category{Title: "Hidden", Description: "d", Slug: "hidden", IsPublished: false, CreatedAt: now}
	require.NoError(t, db.Categories().Add(ctx, hidden))

	addPost := func(pubDate time.Time, isPublished bool, categoryID *uint) *models.Post {
		post := &models.Post{Title: "p", Text: "t", PubDate: pubDate, AuthorID: author.ID, CategoryID: categoryID, IsPublished: isPublished, CreatedAt: now}
		require.NoError(t, db.Posts().Add(ctx, post))
		return post
	}

	visible := addPost(now.Add(-time.Hour), true, &published.ID)
	uncategorized := addPost(now.Add(-2*time.Hour), true, nil)
	addPost(now.Add(-time.Hour), false, nil)
	addPost(now.Add(time.Hour), true, nil)
	underHidden := addPost(now.Add(-time.Hour), true, &hidden.ID)

	require.NoError(t, db.Comments().Add(ctx, &models.Comment{Text: "c", AuthorID: reader.ID, PostID: visible.ID, IsPublished: true, CreatedAt: now}))

	posts, err := db.Posts().Find(ctx, PostFilter{PublicAt: &now})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, visible.ID, posts[0].ID)
	assert.Equal(t, int64(1), posts[0].CommentCount)
	require.NotNil(t, posts[0].Category)
	assert.Equal(t, "travel", posts[0].Category.Slug)
	assert.Equal(t, uncategorized.ID, posts[1].ID)

	total, err := db.Posts().Count(ctx, PostFilter{PublicAt: &now})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	require.NoError(t, db.Categories().Delete(ctx, hidden.ID))
	detached, err := db.Posts().FindByID(ctx, underHidden.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.CategoryID)

	require.NoError(t, db.Users().Delete(ctx, author.ID))
	_, err = db.Posts().FindByID(ctx, visible.ID)
	assert.True(t, errs.IsNotFound(err))
	comments, err := db.Comments().FindByPost(ctx, visible.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestPostgres_UpdateKeepsAuthor(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	author := &models.User{Username: "author", PasswordHash: "x", DateJoined: now}
	require.NoError(t, db.Users().Add(ctx, author))
	other := &models.User{Username: "other", PasswordHash: "x", DateJoined: now}
	require.NoError(t, db.Users().Add(ctx, other))

	post := &models.Post{Title: "p", Text: "t", PubDate: now, AuthorID: author.ID, IsPublished: true, CreatedAt: now}
	require.NoError(t, db.Posts().Add(ctx, post))

	post.Title = "edited"
	post.AuthorID = other.ID
	post.IsPublished = false
	require.NoError(t, db.Posts().Update(ctx, post))

	stored, err := db.Posts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Title)
	assert.False(t, stored.IsPublished)
	assert.Equal(t, author.ID, stored.AuthorID)

	assert.True(t, errs.IsNotFound(db.Posts().Update(ctx, &models.Post{ID: 9999, Title: "x", Text: "x", PubDate: now})))
}

func TestPostgres_ProfileUpdateKeepsStaffFlag(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()

	admin := &models.User{Username: "admin", PasswordHash: "x", IsStaff: true, DateJoined: time.Now().UTC()}
	require.NoError(t, db.Users().Add(ctx, admin))

	admin.FirstName = "Ada"
	admin.IsStaff = false
	require.NoError(t, db.Users().Update(ctx, admin))

	stored, err := db.Users().FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.FirstName)
	assert.True(t, stored.IsStaff)
}
