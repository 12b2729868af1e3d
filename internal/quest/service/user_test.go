package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/cardquest/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t), Now: fixedClock()}

	id := idx.New().String()
	user, err := svc.Create(ctx, id, hashOf("a"), "alice")
	require.NoError(t, err)
	require.Equal(t, id, user.ID)

	t.Run("lookups", func(t *testing.T) {
		got, err := svc.GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, user, got)

		got, err = svc.GetUserByCardHash(ctx, hashOf("A"))
		require.NoError(t, err)
		require.Equal(t, id, got.ID)

		_, err = svc.GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, ErrUserNotFound)

		_, err = svc.GetUserByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, ErrInvalidUserID)

		_, err = svc.GetUserByCardHash(ctx, "abc")
		require.ErrorIs(t, err, ErrInvalidCardHash)
	})

	t.Run("existence checks", func(t *testing.T) {
		ok, err := svc.UsernameExists(ctx, "alice")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.UsernameExists(ctx, "bob")
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = svc.CardHashExists(ctx, hashOf("a"))
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.CardHashExists(ctx, hashOf("b"))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, idx.New().String(), hashOf("b"), "alice")
		require.ErrorIs(t, err, ErrUserExists)

		_, err = svc.Create(ctx, idx.New().String(), hashOf("a"), "carol")
		require.ErrorIs(t, err, ErrUserExists)

		_, err = svc.Create(ctx, id, hashOf("c"), "dave")
		require.ErrorIs(t, err, ErrUserExists)
	})
}

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	name, err := NormalizeUsername("  Zoë  ")
	require.NoError(t, err)
	require.Equal(t, "Zoë", name)

	for _, bad := range []string{"", "\t", "tab\there", "\x00", "\xff"} {
		_, err := NormalizeUsername(bad)
		require.ErrorIs(t, err, ErrInvalidUsername, "username %q", bad)
	}
}
