package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
)

func TestProfileUpdateOwnerOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	about := "chess enjoyer"
	_, err := env.profiles.Update(ctx, bob.ID, alice.ID, ProfilePatch{About: &about})
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	updated, err := env.profiles.Update(ctx, alice.ID, alice.ID, ProfilePatch{About: &about})
	require.NoError(t, err)
	assert.Equal(t, "chess enjoyer", updated.About)

	tooLong := strings.Repeat("x", entity.MaxAboutLength+1)
	_, err = env.profiles.Update(ctx, alice.ID, alice.ID, ProfilePatch{About: &tooLong})
	var ve *errorz.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "about", ve.Field)
}

func TestPresenceOverlay(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice")

	profile, err := env.profiles.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsOnline)

	require.NoError(t, env.profiles.SetOnline(ctx, alice.ID))
	profile, err = env.profiles.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsOnline)

	require.NoError(t, env.profiles.SetOffline(ctx, alice.ID))
	profile, err = env.profiles.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsOnline)
}

func TestProfileMessagesNewestFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	aliceProfile := env.profileOf(t, alice.ID)

	for _, body := range []string{"hi", "hello", "hey"} {
		b := body
		_, err := env.messages.SendToProfile(ctx, bob.ID, aliceProfile.ID, &b, "", "")
		require.NoError(t, err)
	}

	profile, err := env.profiles.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, profile.Messages, 3)
	assert.Equal(t, "hey", *profile.Messages[0].Body)
	assert.Equal(t, "hi", *profile.Messages[2].Body)
}
