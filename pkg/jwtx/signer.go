package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidKey reports malformed signing key material.
	ErrInvalidKey = errors.New("jwtx: invalid signing key")

	// ErrSignFailed wraps failures from the underlying JWS signer.
	ErrSignFailed = errors.New("jwtx: sign failed")
)

// Signer produces compact signed tokens (header.payload.signature) from
// ordered claim sets. Implementations hold immutable key material for
// the process lifetime; a new Signer invalidates previously issued
// tokens, which is acceptable because clients re-mint on the next auth
// flow.
type Signer interface {
	Alg() string
	Sign(claims *OrderedClaims) (string, error)
}

type hs256Signer struct {
	key []byte
}

// NewHS256Signer builds a Signer using HMAC-SHA256 over the supplied
// key. The key is typically derived once at startup (see pkg/cryptox)
// and injected into whatever mints tokens.
func NewHS256Signer(key []byte) (Signer, error) {
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}

	k := make([]byte, len(key))
	copy(k, key)
	return &hs256Signer{key: k}, nil
}

func (s *hs256Signer) Alg() string { return "HS256" }

func (s *hs256Signer) Sign(claims *OrderedClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSignFailed, err)
	}
	return signed, nil
}
