package service

import (
	"context"
	"testing"

	"github.com/glyphkit/glyph/internal/glyph/domain"
	"github.com/glyphkit/glyph/internal/glyph/store"
	"github.com/glyphkit/glyph/internal/glyph/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// scriptedUsers answers AccountIDExists from a canned sequence, so the
// allocator's retry behaviour can be pinned down.
type scriptedUsers struct {
	brokenUsers
	answers []any // bool or error, consumed in order
	calls   int
}

func (u *scriptedUsers) AccountIDExists(ctx context.Context, accountID string) (bool, error) {
	u.calls++
	if len(u.answers) == 0 {
		return false, nil
	}
	next := u.answers[0]
	u.answers = u.answers[1:]
	if err, ok := next.(error); ok {
		return false, err
	}
	return next.(bool), nil
}

type usersOnlyStore struct {
	brokenStore
	users store.Users
}

func (s *usersOnlyStore) Users() store.Users { return s.users }

func TestAllocateAccountID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("allocates a compact 128-bit id", func(t *testing.T) {
		svc := &UserService{Store: &usersOnlyStore{users: &scriptedUsers{}}}

		id, err := svc.AllocateAccountID(ctx)
		require.NoError(t, err)
		require.Len(t, id, 32)
		require.NotContains(t, id, "-")
	})

	t.Run("regenerates on collision", func(t *testing.T) {
		users := &scriptedUsers{answers: []any{true, true, false}}
		svc := &UserService{Store: &usersOnlyStore{users: users}}

		id, err := svc.AllocateAccountID(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		require.Equal(t, 3, users.calls)
	})

	t.Run("store error propagates without retry", func(t *testing.T) {
		users := &scriptedUsers{answers: []any{errBroken}}
		svc := &UserService{Store: &usersOnlyStore{users: users}}

		_, err := svc.AllocateAccountID(ctx)
		require.ErrorIs(t, err, errBroken)
		require.Equal(t, 1, users.calls)
	})

	t.Run("gives up after the attempt cap", func(t *testing.T) {
		answers := make([]any, maxAllocateAttempts)
		for i := range answers {
			answers[i] = true
		}
		users := &scriptedUsers{answers: answers}
		svc := &UserService{Store: &usersOnlyStore{users: users}}

		_, err := svc.AllocateAccountID(ctx)
		require.ErrorIs(t, err, ErrAccountIDExhausted)
		require.Equal(t, maxAllocateAttempts, users.calls)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	svc := &UserService{Store: s}

	u, err := svc.CreateUser(ctx, "discord-1234", "Peely", domain.PlatformEpicPC)
	require.NoError(t, err)
	require.Len(t, u.AccountID, 32)
	require.Equal(t, "Peely", u.DisplayName)

	got, err := svc.GetUser(ctx, u.AccountID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	byExt, err := svc.GetUserByExternalID(ctx, "discord-1234")
	require.NoError(t, err)
	require.Equal(t, u.AccountID, byExt.AccountID)

	t.Run("ban flag", func(t *testing.T) {
		require.NoError(t, svc.SetBanned(ctx, u.AccountID, true))
		got, err := svc.GetUser(ctx, u.AccountID)
		require.NoError(t, err)
		require.True(t, got.Banned)
	})

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, svc.UpdateDisplayName(ctx, u.AccountID, "Agent Peely"))
		got, err := svc.GetUser(ctx, u.AccountID)
		require.NoError(t, err)
		require.Equal(t, "Agent Peely", got.DisplayName)
	})
}
