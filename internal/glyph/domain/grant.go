package domain

import "fmt"

// GrantType is the client-declared strategy for how it proves its right
// to a token. The set is closed; the wire strings double as the "am"
// claim value embedded in issued tokens.
type GrantType string

const (
	GrantClientCredentials GrantType = "client_credentials"
	GrantExchangeCode      GrantType = "exchange_code"
	GrantRefreshToken      GrantType = "refresh_token"
	GrantPassword          GrantType = "password"
)

// ParseGrantType maps a wire string to a GrantType.
func ParseGrantType(s string) (GrantType, error) {
	switch GrantType(s) {
	case GrantClientCredentials, GrantExchangeCode, GrantRefreshToken, GrantPassword:
		return GrantType(s), nil
	default:
		return "", fmt.Errorf("unknown grant type %q", s)
	}
}

func (g GrantType) String() string { return string(g) }
