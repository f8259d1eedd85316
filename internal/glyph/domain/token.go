package domain

import "time"

// TokenRecord is a persisted credential record. One shape serves all
// three owning sets (exchange codes, access tokens, refresh tokens).
// Records are never mutated after insert; rotation mints new records.
type TokenRecord struct {
	ID        string // ULID row id
	Token     string // signed compact token; unique within its set, the lookup key
	AccountID string // owning principal
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the record is logically invalid at the given
// instant. Flows check this on every lookup rather than trusting the
// backend sweep to have already removed the row.
func (t TokenRecord) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// ClientSession is the result of the client_credentials flow: a signed
// client token with no persisted state behind it.
type ClientSession struct {
	Token     string
	ClientID  string
	ExpiresAt time.Time
}

// UserSession is the result of the exchange_code and refresh_token
// flows: an access/refresh token pair bound together by a synthetic
// per-session device identifier, plus the owning user's metadata.
type UserSession struct {
	AccessToken  TokenRecord
	RefreshToken TokenRecord
	User         User
	ClientID     string
	DeviceID     string
}
