package sqlite

import (
	"context"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
)

const (
	tableExchangeCodes = "exchange_codes"
	tableAccessTokens  = "access_tokens"
	tableRefreshTokens = "refresh_tokens"
)

// tokensRepo serves all three credential tables. They share one schema, so
// the table name is the only thing that varies per repo instance. Table
// names come from the consts above, never from caller input.
type tokensRepo struct {
	db    dbtx
	table string
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.TokenRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO `+r.table+` (id, token, account_id, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Token, t.AccountID, t.ExpiresAt.UTC(), t.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *tokensRepo) GetTokenByValue(ctx context.Context, token string) (domain.TokenRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, token, account_id, expires_at, created_at
		 FROM `+r.table+` WHERE token = ?`,
		token,
	)

	var t domain.TokenRecord
	if err := row.Scan(&t.ID, &t.Token, &t.AccountID, &t.ExpiresAt, &t.CreatedAt); err != nil {
		return domain.TokenRecord{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) DeleteTokenByValue(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM `+r.table+` WHERE token = ?`, token,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *tokensRepo) DeleteAccountTokens(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM `+r.table+` WHERE account_id = ?`, accountID,
	)
	return err
}

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM `+r.table+` WHERE expires_at <= ?`, now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
