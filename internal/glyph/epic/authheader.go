package epic

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrInvalidAuthorizationHeader covers every Authorization header
// failure mode: missing header, bad base64, non-UTF8 payload, wrong
// segment count. The platform reports one opaque error for all of
// them, so callers get no finer distinction here either.
var ErrInvalidAuthorizationHeader = errors.New("epic: invalid Authorization header")

// ExtractClientID parses a Basic-style Authorization header value into
// the client identifier: an optional "Basic " prefix, then standard
// base64 of "clientID:clientSecret". The secret portion is ignored;
// only the identifier matters to this service.
func ExtractClientID(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrInvalidAuthorizationHeader
	}

	// Only strip the scheme when the separator is present too; a bare
	// credential whose base64 happens to start with "basic" must be
	// decoded whole.
	if len(header) > 6 && strings.EqualFold(header[:6], "basic ") {
		header = strings.TrimSpace(header[6:])
	}

	decoded, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	if !utf8.Valid(decoded) {
		return "", ErrInvalidAuthorizationHeader
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 2 {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[0], nil
}
