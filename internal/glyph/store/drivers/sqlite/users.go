package sqlite

import (
	"context"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, account_id, external_id, display_name, banned, platform,
	last_login_at, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.AccountID, u.ExternalID, u.DisplayName, u.Banned, string(u.Platform),
		u.LastLoginAt.UTC(), u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByAccountID(ctx context.Context, accountID string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE account_id = ?`, accountID,
	)
	return scanUser(row)
}

func (r *usersRepo) GetUserByExternalID(ctx context.Context, externalID string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE external_id = ?`, externalID,
	)
	return scanUser(row)
}

func (r *usersRepo) AccountIDExists(ctx context.Context, accountID string) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE account_id = ?`, accountID,
	)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) UpdateDisplayName(ctx context.Context, accountID string, displayName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET display_name = ?, updated_at = ? WHERE account_id = ?`,
		displayName, time.Now().UTC(), accountID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, accountID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ?, updated_at = ? WHERE account_id = ?`,
		at.UTC(), time.Now().UTC(), accountID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetBanned(ctx context.Context, accountID string, banned bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET banned = ?, updated_at = ? WHERE account_id = ?`,
		banned, time.Now().UTC(), accountID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u        domain.User
		platform string
	)
	err := row.Scan(
		&u.ID, &u.AccountID, &u.ExternalID, &u.DisplayName, &u.Banned, &platform,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Platform = domain.Platform(platform)
	return u, nil
}
