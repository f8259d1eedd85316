package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
	"github.com/glyphkit/glyph/internal/glyph/store"
	"github.com/glyphkit/glyph/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(externalID, accountID string) domain.User {
	now := time.Now()
	return domain.User{
		ID:          idx.New().String(),
		AccountID:   accountID,
		ExternalID:  externalID,
		DisplayName: "Renegade Raider",
		Platform:    domain.PlatformEpicPC,
		LastLoginAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := newTestUser("ext-1", "acc1")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("lookup by account id", func(t *testing.T) {
		got, err := s.Users().GetUserByAccountID(ctx, "acc1")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, u.DisplayName, got.DisplayName)
		require.Equal(t, domain.PlatformEpicPC, got.Platform)
	})

	t.Run("lookup by external id", func(t *testing.T) {
		got, err := s.Users().GetUserByExternalID(ctx, "ext-1")
		require.NoError(t, err)
		require.Equal(t, "acc1", got.AccountID)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByAccountID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("account id existence", func(t *testing.T) {
		exists, err := s.Users().AccountIDExists(ctx, "acc1")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = s.Users().AccountIDExists(ctx, "acc2")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("duplicate account id rejected", func(t *testing.T) {
		dup := newTestUser("ext-2", "acc1")
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestUsersUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := newTestUser("ext-1", "acc1")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("display name", func(t *testing.T) {
		require.NoError(t, s.Users().UpdateDisplayName(ctx, "acc1", "Raven"))
		got, err := s.Users().GetUserByAccountID(ctx, "acc1")
		require.NoError(t, err)
		require.Equal(t, "Raven", got.DisplayName)
	})

	t.Run("last login", func(t *testing.T) {
		at := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		require.NoError(t, s.Users().TouchLastLogin(ctx, "acc1", at))
		got, err := s.Users().GetUserByAccountID(ctx, "acc1")
		require.NoError(t, err)
		require.WithinDuration(t, at, got.LastLoginAt, time.Second)
	})

	t.Run("banned flag", func(t *testing.T) {
		require.NoError(t, s.Users().SetBanned(ctx, "acc1", true))
		got, err := s.Users().GetUserByAccountID(ctx, "acc1")
		require.NoError(t, err)
		require.True(t, got.Banned)
	})

	t.Run("update on missing account maps to ErrNotFound", func(t *testing.T) {
		require.ErrorIs(t, s.Users().UpdateDisplayName(ctx, "nope", "X"), store.ErrNotFound)
	})
}

func TestTokenSetsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := domain.TokenRecord{
		ID:        idx.New().String(),
		Token:     "shared-value",
		AccountID: "acc1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	// The same token value can live in all three sets at once.
	require.NoError(t, s.ExchangeCodes().CreateToken(ctx, rec))
	rec.ID = idx.New().String()
	require.NoError(t, s.AccessTokens().CreateToken(ctx, rec))
	rec.ID = idx.New().String()
	require.NoError(t, s.RefreshTokens().CreateToken(ctx, rec))

	deleted, err := s.AccessTokens().DeleteTokenByValue(ctx, "shared-value")
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = s.AccessTokens().GetTokenByValue(ctx, "shared-value")
	require.ErrorIs(t, err, store.ErrNotFound)

	// The other two sets are untouched.
	_, err = s.ExchangeCodes().GetTokenByValue(ctx, "shared-value")
	require.NoError(t, err)
	_, err = s.RefreshTokens().GetTokenByValue(ctx, "shared-value")
	require.NoError(t, err)
}

func TestTokensRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := domain.TokenRecord{
		ID:        idx.New().String(),
		Token:     "eg1~abc",
		AccountID: "acc1",
		ExpiresAt: time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.RefreshTokens().CreateToken(ctx, rec))

	t.Run("lookup by value", func(t *testing.T) {
		got, err := s.RefreshTokens().GetTokenByValue(ctx, "eg1~abc")
		require.NoError(t, err)
		require.Equal(t, rec.ID, got.ID)
		require.Equal(t, "acc1", got.AccountID)
		require.WithinDuration(t, rec.ExpiresAt, got.ExpiresAt, time.Second)
	})

	t.Run("duplicate value rejected", func(t *testing.T) {
		dup := rec
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.RefreshTokens().CreateToken(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("delete reports miss", func(t *testing.T) {
		deleted, err := s.RefreshTokens().DeleteTokenByValue(ctx, "unknown")
		require.NoError(t, err)
		require.False(t, deleted)
	})
}

func TestDeleteAccountTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i, tok := range []string{"a", "b", "c"} {
		owner := "acc1"
		if i == 2 {
			owner = "acc2"
		}
		require.NoError(t, s.AccessTokens().CreateToken(ctx, domain.TokenRecord{
			ID:        idx.New().String(),
			Token:     tok,
			AccountID: owner,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))
	}

	require.NoError(t, s.AccessTokens().DeleteAccountTokens(ctx, "acc1"))

	_, err := s.AccessTokens().GetTokenByValue(ctx, "a")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.AccessTokens().GetTokenByValue(ctx, "b")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.AccessTokens().GetTokenByValue(ctx, "c")
	require.NoError(t, err)
}

func TestDeleteExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now()
	require.NoError(t, s.ExchangeCodes().CreateToken(ctx, domain.TokenRecord{
		ID: idx.New().String(), Token: "stale", AccountID: "acc1",
		ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, s.ExchangeCodes().CreateToken(ctx, domain.TokenRecord{
		ID: idx.New().String(), Token: "fresh", AccountID: "acc1",
		ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	removed, err := s.ExchangeCodes().DeleteExpiredTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	_, err = s.ExchangeCodes().GetTokenByValue(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.ExchangeCodes().GetTokenByValue(ctx, "fresh")
	require.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := context.DeadlineExceeded
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessTokens().CreateToken(ctx, domain.TokenRecord{
			ID: idx.New().String(), Token: "t1", AccountID: "acc1",
			ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.AccessTokens().GetTokenByValue(ctx, "t1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.RefreshTokens().CreateToken(ctx, domain.TokenRecord{
			ID: idx.New().String(), Token: "t1", AccountID: "acc1",
			ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
		})
	})
	require.NoError(t, err)

	_, err = s.RefreshTokens().GetTokenByValue(ctx, "t1")
	require.NoError(t, err)
}
