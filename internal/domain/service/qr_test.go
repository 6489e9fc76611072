package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	qr "github.com/clubmsg/backend/pkg/qrcode"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestClubInviteQR(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	club, err := env.clubs.Create(ctx, alice.ID, "Chess", "", nil)
	require.NoError(t, err)

	qrs := NewQrService(&fakeClubStorage{db: env.db}, qr.Config{Size: 128, RecoveryLevel: 3}, "https://example.com")

	_, err = qrs.GetClubInviteQR(ctx, bob.ID, club.ID)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	data, err := qrs.GetClubInviteQR(ctx, alice.ID, club.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	// The rendered PNG is cached on the club row.
	again, err := qrs.GetClubInviteQR(ctx, alice.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, data, again)
	firstCode := env.db.clubs[club.ID].InviteCodeID
	assert.NotEmpty(t, firstCode)

	// Revoking mints a fresh code on the next request.
	assert.ErrorIs(t, qrs.RevokeClubInviteQR(ctx, bob.ID, club.ID), errorz.ErrForbidden)
	require.NoError(t, qrs.RevokeClubInviteQR(ctx, alice.ID, club.ID))
	assert.Empty(t, env.db.clubs[club.ID].InviteCodeID)

	_, err = qrs.GetClubInviteQR(ctx, alice.ID, club.ID)
	require.NoError(t, err)
	assert.NotEqual(t, firstCode, env.db.clubs[club.ID].InviteCodeID)

	_, err = qrs.GetClubInviteQR(ctx, alice.ID, "missing-club")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
