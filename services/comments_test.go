package services

import (
	"context"
	"testing"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countComments(t *testing.T, env testEnv, post *models.Post) int {
	t.Helper()
	comments, err := env.db.Comments().FindByPost(context.Background(), post.ID)
	require.NoError(t, err)
	return len(comments)
}

func TestComments_CreateRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)
	post := env.addPost(t, env.alice)

	_, err := env.svc.Comments.Create(context.Background(), models.Anonymous, post.ID, CommentInput{Text: "hi"})
	assert.True(t, errs.IsAuthenticationRequired(err))
	assert.Equal(t, 0, countComments(t, env, post))
}

func TestComments_Create(t *testing.T) {
	env := newTestEnv(t)
	post := env.addPost(t, env.alice)

	comment, err := env.svc.Comments.Create(context.Background(), viewerOf(env.bob), post.ID, CommentInput{Text: "  nice  "})
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Text)
	assert.Equal(t, env.bob.ID, comment.AuthorID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.True(t, comment.IsPublished)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "bob", comment.Author.Username)
}

func TestComments_CreateOnMissingOrHiddenPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	draft := env.addPost(t, env.alice, hidden)

	_, err := env.svc.Comments.Create(ctx, viewerOf(env.bob), 999, CommentInput{Text: "hi"})
	assert.True(t, errs.IsNotFound(err))

	_, err = env.svc.Comments.Create(ctx, viewerOf(env.bob), draft.ID, CommentInput{Text: "hi"})
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 0, countComments(t, env, draft))

	_, err = env.svc.Comments.Create(ctx, viewerOf(env.alice), draft.ID, CommentInput{Text: "note to self"})
	require.NoError(t, err)
}

func TestComments_CreateEmptyText(t *testing.T) {
	env := newTestEnv(t)
	post := env.addPost(t, env.alice)

	_, err := env.svc.Comments.Create(context.Background(), viewerOf(env.bob), post.ID, CommentInput{Text: "   "})
	assert.Contains(t, fieldErrors(t, err), "text")
	assert.Equal(t, 0, countComments(t, env, post))
}

func TestComments_EditByOtherUserIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.addPost(t, env.alice)
	comment := env.addComment(t, env.alice, post, "original")

	_, err := env.svc.Comments.Update(ctx, viewerOf(env.bob), post.ID, comment.ID, CommentInput{Text: "defaced"})
	assert.True(t, errs.IsForbidden(err))

	_, err = env.svc.Comments.GetForEdit(ctx, viewerOf(env.bob), post.ID, comment.ID)
	assert.True(t, errs.IsForbidden(err))

	stored, err := env.db.Comments().FindByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
}

func TestComments_EditUnderWrongPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.addPost(t, env.alice)
	other := env.addPost(t, env.alice)
	comment := env.addComment(t, env.bob, post, "here")

	_, err := env.svc.Comments.Update(ctx, viewerOf(env.bob), other.ID, comment.ID, CommentInput{Text: "moved"})
	assert.True(t, errs.IsNotFound(err))

	err = env.svc.Comments.Delete(ctx, viewerOf(env.bob), other.ID, comment.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 1, countComments(t, env, post))
}

func TestComments_UpdateAndDeleteByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.addPost(t, env.alice)
	comment := env.addComment(t, env.bob, post, "first draft")

	updated, err := env.svc.Comments.Update(ctx, viewerOf(env.bob), post.ID, comment.ID, CommentInput{Text: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Equal(t, env.bob.ID, updated.AuthorID)

	assert.True(t, errs.IsAuthenticationRequired(env.svc.Comments.Delete(ctx, models.Anonymous, post.ID, comment.ID)))
	require.NoError(t, env.svc.Comments.Delete(ctx, viewerOf(env.bob), post.ID, comment.ID))
	assert.Equal(t, 0, countComments(t, env, post))
}

func TestComments_HiddenCommentIsNotFoundForOthers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.addPost(t, env.alice)
	comment := env.addComment(t, env.bob, post, "private")
	comment.IsPublished = false
	require.NoError(t, env.db.Comments().Update(ctx, comment))

	_, err := env.svc.Comments.GetForEdit(ctx, viewerOf(env.alice), post.ID, comment.ID)
	assert.True(t, errs.IsNotFound(err))

	got, err := env.svc.Comments.GetForEdit(ctx, viewerOf(env.bob), post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, got.ID)
}
