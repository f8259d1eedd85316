package app

import (
	"fmt"

	"github.com/glyphkit/glyph/pkg/cryptox"
	"github.com/glyphkit/glyph/pkg/jwtx"
)

// initSigner derives the HMAC signing key from the configured runner id
// and wraps it in a Signer. The signer is injected into TokenService;
// nothing else in the process ever sees the raw key.
func initSigner(cfg Config) (jwtx.Signer, error) {
	key, err := cryptox.DeriveSigningKey(cfg.RunnerID)
	if err != nil {
		return nil, fmt.Errorf("deriving signing key: %w", err)
	}

	signer, err := jwtx.NewHS256Signer(key)
	if err != nil {
		return nil, fmt.Errorf("building signer: %w", err)
	}
	return signer, nil
}
