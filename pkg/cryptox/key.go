package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// SigningKeySize is the derived key length in bytes (256 bits, matching
// the HMAC-SHA256 block the key feeds).
const SigningKeySize = 32

// ErrEmptyKeyMaterial reports that no key material was supplied.
var ErrEmptyKeyMaterial = errors.New("cryptox: empty key material")

// DeriveSigningKey derives a 256-bit HMAC signing key from a
// process-scoped identifier using HKDF-SHA256. Separator characters are
// stripped from the identifier first, so the canonical and compact UUID
// forms derive the same key.
func DeriveSigningKey(runnerID string) ([]byte, error) {
	stripped := strings.ReplaceAll(strings.TrimSpace(runnerID), "-", "")
	if stripped == "" {
		return nil, ErrEmptyKeyMaterial
	}

	kdf := hkdf.New(sha256.New, []byte(stripped), nil, []byte("glyph.token.signing.v1"))

	key := make([]byte, SigningKeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive signing key: %w", err)
	}
	return key, nil
}
