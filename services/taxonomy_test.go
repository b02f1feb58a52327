package services

import (
	"context"
	"testing"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffOf(user *models.User) models.Viewer {
	v := viewerOf(user)
	v.Staff = true
	return v
}

func TestTaxonomy_RequiresStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	input := CategoryInput{Title: "News", Description: "d", Slug: "news"}

	_, err := env.svc.Taxonomy.CreateCategory(ctx, models.Anonymous, input)
	assert.True(t, errs.IsAuthenticationRequired(err))

	_, err = env.svc.Taxonomy.CreateCategory(ctx, viewerOf(env.bob), input)
	assert.True(t, errs.IsForbidden(err))

	_, err = env.svc.Taxonomy.ListLocations(ctx, viewerOf(env.bob))
	assert.True(t, errs.IsForbidden(err))
}

func TestTaxonomy_CategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := staffOf(env.alice)

	category, err := env.svc.Taxonomy.CreateCategory(ctx, admin, CategoryInput{Title: "News", Description: "Daily", Slug: "news"})
	require.NoError(t, err)
	assert.True(t, category.IsPublished)

	_, err = env.svc.Taxonomy.CreateCategory(ctx, admin, CategoryInput{Title: "Dup", Description: "d", Slug: "news"})
	assert.True(t, errs.IsConflict(err))

	_, err = env.svc.Taxonomy.CreateCategory(ctx, admin, CategoryInput{Title: "Bad", Description: "d", Slug: "bad slug!"})
	assert.Contains(t, fieldErrors(t, err), "slug")

	post := env.addPost(t, env.bob, inCategory(category))

	hiddenCategory, err := env.svc.Taxonomy.UpdateCategory(ctx, admin, category.ID, CategoryInput{
		Title: "News", Description: "Daily", Slug: "news", IsPublished: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, hiddenCategory.IsPublished)

	_, err = env.svc.Feeds.Category(ctx, "news", "")
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, env.svc.Taxonomy.DeleteCategory(ctx, admin, category.ID))
	stored, err := env.db.Posts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CategoryID)

	// Detached posts are public again.
	feed, err := env.svc.Feeds.Index(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []uint{post.ID}, postIDs(feed.Posts))
}

func TestTaxonomy_LocationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := staffOf(env.alice)

	_, err := env.svc.Taxonomy.CreateLocation(ctx, admin, LocationInput{Name: " "})
	assert.Contains(t, fieldErrors(t, err), "name")

	location, err := env.svc.Taxonomy.CreateLocation(ctx, admin, LocationInput{Name: "Kazan"})
	require.NoError(t, err)

	renamed, err := env.svc.Taxonomy.UpdateLocation(ctx, admin, location.ID, LocationInput{Name: "Kazan, Tatarstan"})
	require.NoError(t, err)
	assert.Equal(t, "Kazan, Tatarstan", renamed.Name)
	assert.True(t, renamed.IsPublished)

	locations, err := env.svc.Taxonomy.ListLocations(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, locations, 1)

	require.NoError(t, env.svc.Taxonomy.DeleteLocation(ctx, admin, location.ID))
	_, err = env.svc.Taxonomy.GetLocation(ctx, admin, location.ID)
	assert.True(t, errs.IsNotFound(err))
}
