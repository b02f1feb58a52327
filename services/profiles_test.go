package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rpupo63/blogicum-backend/database/inmemory"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.svc.Profiles.UpdateProfile(ctx, viewerOf(env.alice), ProfileInput{
		Username:  "alice.w",
		FirstName: "Alice",
		LastName:  "Walker",
		Email:     "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice.w", user.Username)

	stored, err := env.db.Users().FindByUsername(ctx, "alice.w")
	require.NoError(t, err)
	assert.Equal(t, "Walker", stored.LastName)
	assert.Equal(t, "alice@example.com", stored.Email)
}

func TestProfiles_UpdateProfileErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Profiles.UpdateProfile(ctx, models.Anonymous, ProfileInput{Username: "ghost"})
	assert.True(t, errs.IsAuthenticationRequired(err))

	_, err = env.svc.Profiles.UpdateProfile(ctx, viewerOf(env.alice), ProfileInput{Username: "bob"})
	assert.True(t, errs.IsConflict(err))

	_, err = env.svc.Profiles.UpdateProfile(ctx, viewerOf(env.alice), ProfileInput{Username: "no spaces", Email: "nope"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")

	_, err = env.svc.Profiles.UpdateProfile(ctx, viewerOf(env.alice), ProfileInput{Username: strings.Repeat("a", 151)})
	assert.Contains(t, fieldErrors(t, err), "username")

	stored, err := env.db.Users().FindByID(ctx, env.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
}

func TestProfiles_ReservedUsernames(t *testing.T) {
	ctx := context.Background()
	db := inmemory.New()
	alice := &models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Users().Add(ctx, alice))
	admin := &models.User{Username: "admin", PasswordHash: "x", IsStaff: true}
	require.NoError(t, db.Users().Add(ctx, admin))
	profiles := New(db, WithReservedUsernames([]string{"admin", "root"})).Profiles

	_, err := profiles.UpdateProfile(ctx, viewerOf(alice), ProfileInput{Username: "root"})
	assert.Contains(t, fieldErrors(t, err), "username")

	_, err = profiles.UpdateProfile(ctx, viewerOf(admin), ProfileInput{Username: "boss"})
	assert.Contains(t, fieldErrors(t, err), "username")

	// Keeping the reserved name while editing other fields is fine.
	user, err := profiles.UpdateProfile(ctx, viewerOf(admin), ProfileInput{Username: "admin", FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)

	stored, err := db.Users().FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsStaff)
	stored, err = db.Users().FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.False(t, stored.IsStaff)
}

func TestProfiles_Current(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.svc.Profiles.Current(context.Background(), viewerOf(env.bob))
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}
