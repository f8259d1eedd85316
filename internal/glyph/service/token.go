package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
	"github.com/glyphkit/glyph/internal/glyph/epic"
	"github.com/glyphkit/glyph/internal/glyph/store"
	"github.com/glyphkit/glyph/pkg/idx"
	"github.com/glyphkit/glyph/pkg/jwtx"
	"github.com/glyphkit/glyph/pkg/slogx"
)

var (
	// ErrCodeNotFound covers both an unknown exchange code and one that
	// has passed its expiry. Callers must not be able to tell the two apart.
	ErrCodeNotFound = errors.New("exchange code not found")

	// ErrRefreshNotFound covers both an unknown refresh token and one that
	// has passed its expiry.
	ErrRefreshNotFound = errors.New("refresh token not found")

	// ErrOrphanedToken means a live credential points at an account the
	// directory no longer knows. That should never happen; treat it as an
	// internal failure, not a credential failure.
	ErrOrphanedToken = errors.New("token owner missing from user directory")
)

// TokenService mints, redeems and revokes the three credential kinds.
// All signed tokens share one HMAC key via the injected Signer.
type TokenService struct {
	Signer jwtx.Signer
	Store  store.Store

	ClientTTL   time.Duration
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	ExchangeTTL time.Duration
}

func (s *TokenService) clientTTL() time.Duration {
	if s.ClientTTL > 0 {
		return s.ClientTTL
	}
	return epic.DefaultClientTokenTTL
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return epic.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return epic.DefaultRefreshTokenTTL
}

func (s *TokenService) exchangeTTL() time.Duration {
	if s.ExchangeTTL > 0 {
		return s.ExchangeTTL
	}
	return epic.DefaultExchangeCodeTTL
}

// ClientCredentials implements the client_credentials grant. The session
// is entirely stateless: nothing is persisted, the signed token is the
// only artifact.
func (s *TokenService) ClientCredentials(ctx context.Context, clientID string) (domain.ClientSession, error) {
	now := time.Now()
	expiresAt := now.Add(s.clientTTL())

	signed, err := s.Signer.Sign(epic.ClientTokenClaims(clientID, now, expiresAt))
	if err != nil {
		return domain.ClientSession{}, err
	}

	return domain.ClientSession{
		Token:     epic.PrefixToken(signed),
		ClientID:  clientID,
		ExpiresAt: expiresAt,
	}, nil
}

// RedeemExchangeCode trades an exchange code for an access/refresh pair.
// The code itself is left in place and stays redeemable until its own
// expiry; only expiry retires it.
func (s *TokenService) RedeemExchangeCode(ctx context.Context, clientID, code string) (domain.UserSession, error) {
	now := time.Now()
	code = epic.StripTokenPrefix(code)

	rec, err := s.Store.ExchangeCodes().GetTokenByValue(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserSession{}, ErrCodeNotFound
		}
		return domain.UserSession{}, err
	}
	if rec.Expired(now) {
		return domain.UserSession{}, ErrCodeNotFound
	}

	user, err := s.lookupOwner(ctx, rec.AccountID)
	if err != nil {
		return domain.UserSession{}, err
	}

	session, err := s.mintSession(ctx, user, clientID, domain.GrantExchangeCode, now)
	if err != nil {
		return domain.UserSession{}, err
	}

	if err := s.Store.Users().TouchLastLogin(ctx, user.AccountID, now); err != nil {
		// Best-effort bookkeeping; the session itself is already valid.
		slogx.FromContext(ctx).Warn("failed to record login time",
			slog.String("account_id", user.AccountID),
			slog.String("error", err.Error()))
	}

	return session, nil
}

// Refresh implements the refresh_token grant. Rotation is permissive:
// the presented token keeps working until it expires, so several devices
// can share one refresh token.
func (s *TokenService) Refresh(ctx context.Context, clientID, refreshToken string) (domain.UserSession, error) {
	now := time.Now()
	refreshToken = epic.StripTokenPrefix(refreshToken)

	rec, err := s.Store.RefreshTokens().GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserSession{}, ErrRefreshNotFound
		}
		return domain.UserSession{}, err
	}
	if rec.Expired(now) {
		return domain.UserSession{}, ErrRefreshNotFound
	}

	user, err := s.lookupOwner(ctx, rec.AccountID)
	if err != nil {
		return domain.UserSession{}, err
	}

	return s.mintSession(ctx, user, clientID, domain.GrantRefreshToken, now)
}

// IssueExchangeCode signs and persists a new exchange code for the given
// account. Collaborating services hand the code to a client, which then
// redeems it over HTTP.
func (s *TokenService) IssueExchangeCode(ctx context.Context, accountID string) (domain.TokenRecord, error) {
	now := time.Now()
	expiresAt := now.Add(s.exchangeTTL())

	signed, err := s.Signer.Sign(epic.ExchangeCodeClaims(accountID, expiresAt))
	if err != nil {
		return domain.TokenRecord{}, err
	}

	rec := domain.TokenRecord{
		ID:        idx.New().String(),
		Token:     signed,
		AccountID: accountID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.Store.ExchangeCodes().CreateToken(ctx, rec); err != nil {
		return domain.TokenRecord{}, err
	}
	return rec, nil
}

// RevokeExchangeCode removes a single exchange code by value. The bool
// reports whether a record was actually removed.
func (s *TokenService) RevokeExchangeCode(ctx context.Context, code string) (bool, error) {
	return s.Store.ExchangeCodes().DeleteTokenByValue(ctx, epic.StripTokenPrefix(code))
}

// RevokeAccessToken removes a single access token by value.
func (s *TokenService) RevokeAccessToken(ctx context.Context, token string) (bool, error) {
	return s.Store.AccessTokens().DeleteTokenByValue(ctx, epic.StripTokenPrefix(token))
}

// RevokeRefreshToken removes a single refresh token by value.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, token string) (bool, error) {
	return s.Store.RefreshTokens().DeleteTokenByValue(ctx, epic.StripTokenPrefix(token))
}

// RevokeAccountTokens removes every credential an account owns across
// all three sets, atomically. This backs the ban path.
func (s *TokenService) RevokeAccountTokens(ctx context.Context, accountID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ExchangeCodes().DeleteAccountTokens(ctx, accountID); err != nil {
			return err
		}
		if err := tx.AccessTokens().DeleteAccountTokens(ctx, accountID); err != nil {
			return err
		}
		return tx.RefreshTokens().DeleteAccountTokens(ctx, accountID)
	})
}

func (s *TokenService) lookupOwner(ctx context.Context, accountID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Error("live credential references a missing account",
				slog.String("account_id", accountID))
			return domain.User{}, ErrOrphanedToken
		}
		return domain.User{}, err
	}
	return user, nil
}

// mintSession signs and persists a fresh access/refresh pair bound by a
// shared synthetic device id. The two inserts are independent; if either
// fails the whole flow fails and the caller gets an error.
func (s *TokenService) mintSession(
	ctx context.Context,
	user domain.User,
	clientID string,
	grant domain.GrantType,
	now time.Time,
) (domain.UserSession, error) {
	deviceID := epic.NewID()
	accessExpires := now.Add(s.accessTTL())
	refreshExpires := now.Add(s.refreshTTL())

	accessSigned, err := s.Signer.Sign(epic.AccessTokenClaims(user, clientID, deviceID, grant, now, accessExpires))
	if err != nil {
		return domain.UserSession{}, err
	}
	refreshSigned, err := s.Signer.Sign(epic.RefreshTokenClaims(user, clientID, deviceID, grant, now, refreshExpires))
	if err != nil {
		return domain.UserSession{}, err
	}

	access := domain.TokenRecord{
		ID:        idx.New().String(),
		Token:     accessSigned,
		AccountID: user.AccountID,
		ExpiresAt: accessExpires,
		CreatedAt: now,
	}
	if err := s.Store.AccessTokens().CreateToken(ctx, access); err != nil {
		return domain.UserSession{}, err
	}

	refresh := domain.TokenRecord{
		ID:        idx.New().String(),
		Token:     refreshSigned,
		AccountID: user.AccountID,
		ExpiresAt: refreshExpires,
		CreatedAt: now,
	}
	if err := s.Store.RefreshTokens().CreateToken(ctx, refresh); err != nil {
		return domain.UserSession{}, err
	}

	return domain.UserSession{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
		ClientID:     clientID,
		DeviceID:     deviceID,
	}, nil
}
