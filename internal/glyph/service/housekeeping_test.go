package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
	"github.com/glyphkit/glyph/internal/glyph/store"
	"github.com/glyphkit/glyph/internal/glyph/store/drivers/sqlite"
	"github.com/glyphkit/glyph/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestSweepRemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	now := time.Now()
	sets := []store.Tokens{s.ExchangeCodes(), s.AccessTokens(), s.RefreshTokens()}
	for _, set := range sets {
		require.NoError(t, set.CreateToken(ctx, domain.TokenRecord{
			ID: idx.New().String(), Token: "stale", AccountID: "acc1",
			ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour),
		}))
		require.NoError(t, set.CreateToken(ctx, domain.TokenRecord{
			ID: idx.New().String(), Token: "fresh", AccountID: "acc1",
			ExpiresAt: now.Add(time.Hour), CreatedAt: now,
		}))
	}

	hk := NewHousekeepingService(s, slog.New(slog.DiscardHandler), time.Hour)
	hk.Sweep(ctx)

	for _, set := range sets {
		_, err := set.GetTokenByValue(ctx, "stale")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = set.GetTokenByValue(ctx, "fresh")
		require.NoError(t, err)
	}
}

func TestHousekeepingLifecycle(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	hk := NewHousekeepingService(s, slog.New(slog.DiscardHandler), time.Hour)
	hk.Start()
	hk.Stop() // must not hang or panic
}

func TestHousekeepingDefaultInterval(t *testing.T) {
	t.Parallel()

	hk := NewHousekeepingService(brokenStore{}, slog.New(slog.DiscardHandler), 0)
	require.Equal(t, time.Hour, hk.Interval)
}
