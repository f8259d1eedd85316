package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
	"github.com/glyphkit/glyph/internal/glyph/epic"
	"github.com/glyphkit/glyph/internal/glyph/store"
	"github.com/glyphkit/glyph/pkg/idx"
)

// maxAllocateAttempts bounds the account-id allocation loop. A 128-bit
// random id colliding even once is already remarkable; hitting the cap
// means the backend is lying to us, not that we are unlucky.
const maxAllocateAttempts = 16

// ErrAccountIDExhausted is returned when allocation gives up after
// maxAllocateAttempts collisions.
var ErrAccountIDExhausted = errors.New("could not allocate a unique account id")

type UserService struct {
	Store store.Store
}

// CreateUser registers a new directory entry for an upstream identity,
// allocating a fresh unique account id for it.
func (s *UserService) CreateUser(ctx context.Context, externalID, displayName string, platform domain.Platform) (domain.User, error) {
	accountID, err := s.AllocateAccountID(ctx)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now()
	u := domain.User{
		ID:          idx.New().String(),
		AccountID:   accountID,
		ExternalID:  externalID,
		DisplayName: displayName,
		Platform:    platform,
		LastLoginAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// GetUser fetches a user by its platform account id.
func (s *UserService) GetUser(ctx context.Context, accountID string) (domain.User, error) {
	return s.Store.Users().GetUserByAccountID(ctx, accountID)
}

// GetUserByExternalID fetches a user by its upstream identity id.
func (s *UserService) GetUserByExternalID(ctx context.Context, externalID string) (domain.User, error) {
	return s.Store.Users().GetUserByExternalID(ctx, externalID)
}

// UpdateDisplayName renames a user.
func (s *UserService) UpdateDisplayName(ctx context.Context, accountID, displayName string) error {
	return s.Store.Users().UpdateDisplayName(ctx, accountID, displayName)
}

// SetBanned flips the ban flag. Revoking the account's outstanding
// credentials is the caller's job (TokenService.RevokeAccountTokens).
func (s *UserService) SetBanned(ctx context.Context, accountID string, banned bool) error {
	return s.Store.Users().SetBanned(ctx, accountID, banned)
}

// AllocateAccountID draws random account ids until one is free. Store
// errors propagate immediately rather than burning attempts.
func (s *UserService) AllocateAccountID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		candidate := epic.NewID()

		taken, err := s.Store.Users().AccountIDExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking account id: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrAccountIDExhausted
}
