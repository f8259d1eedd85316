package store

import (
	"context"
	"errors"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, and
// later postgres if we ever need it) implement this. It exposes
// sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	ExchangeCodes() Tokens
	AccessTokens() Tokens
	RefreshTokens() Tokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., bulk
	// revocation). The caller MUST call Commit() or Rollback() on the
	// returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByAccountID returns a user by its platform account id.
	GetUserByAccountID(ctx context.Context, accountID string) (domain.User, error)

	// GetUserByExternalID returns a user by its upstream identity id.
	GetUserByExternalID(ctx context.Context, externalID string) (domain.User, error)

	// AccountIDExists reports whether any user already owns the account id.
	AccountIDExists(ctx context.Context, accountID string) (bool, error)

	// UpdateDisplayName mutates the display_name and bumps updated_at.
	UpdateDisplayName(ctx context.Context, accountID string, displayName string) error

	// TouchLastLogin sets last_login_at and bumps updated_at.
	TouchLastLogin(ctx context.Context, accountID string, at time.Time) error

	// SetBanned flips the banned flag and bumps updated_at.
	SetBanned(ctx context.Context, accountID string, banned bool) error
}

// Tokens is a credential set keyed by the raw token value. The same
// interface fronts exchange codes, access tokens and refresh tokens; the
// driver binds it to the right table.
type Tokens interface {
	// CreateToken stores a new token record.
	CreateToken(ctx context.Context, t domain.TokenRecord) error

	// GetTokenByValue returns the record for a raw token value.
	GetTokenByValue(ctx context.Context, token string) (domain.TokenRecord, error)

	// DeleteTokenByValue removes a record by its raw token value and
	// reports whether a row was deleted.
	DeleteTokenByValue(ctx context.Context, token string) (bool, error)

	// DeleteAccountTokens removes every record owned by an account.
	DeleteAccountTokens(ctx context.Context, accountID string) error

	// DeleteExpiredTokens is housekeeping. It returns the number of rows
	// removed.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}
