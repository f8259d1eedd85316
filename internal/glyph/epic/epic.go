// Package epic holds the wire-level surface of the emulated platform:
// claim recipes for signed tokens, the response and error envelopes,
// and the Authorization-header credential extraction. Field names,
// claim key order and constant values here are bit-compatible with the
// emulated protocol and must not be "tidied up".
package epic

import (
	"strings"
	"time"
)

const (
	// TokenPrefix is the marker prepended to signed tokens on the wire
	// and stripped from presented credentials before lookup.
	TokenPrefix = "eg1~"

	// TokenType is the only token_type the platform launcher sends.
	// Other values are logged and accepted.
	TokenType = "eg1"

	// App is the product identifier embedded in access tokens.
	App = "fortnite"

	// ClientService is the issuing service identifier ("clsvc"/"pfpid"
	// claims, "client_service" response field).
	ClientService = "prod-fn"

	// SourceService is this service's own name, embedded as the "srvc"
	// claim of exchange codes it issues.
	SourceService = "glyph"

	// OriginatingService and Intent are constants of the error envelope.
	OriginatingService = "any"
	Intent             = "prod"
)

// Default credential lifetimes. Mint calls accept an override duration;
// zero selects these.
const (
	DefaultClientTokenTTL  = 4 * time.Hour
	DefaultAccessTokenTTL  = 7200 * time.Second
	DefaultRefreshTokenTTL = 28800 * time.Second
	DefaultExchangeCodeTTL = 28800 * time.Second
)

// ClientCredentialsExpiresIn is the relative expiry reported by the
// client_credentials response. The upstream platform reports 3600 even
// though the token itself lives DefaultClientTokenTTL; preserved for
// wire compatibility.
const ClientCredentialsExpiresIn = 3600

// StripTokenPrefix removes the wire marker from a presented credential.
func StripTokenPrefix(token string) string {
	return strings.TrimPrefix(token, TokenPrefix)
}

// PrefixToken adds the wire marker to a freshly signed token.
func PrefixToken(token string) string {
	return TokenPrefix + token
}
