package epic

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/glyphkit/glyph/pkg/httpx"
)

// Error is the platform's error envelope. Field names and the presence
// of the X-Epic-Error-* headers are bit-compatible with the emulated
// protocol; messageVars is always a list, never null.
type Error struct {
	StatusCode int `json:"-"`

	Code               string   `json:"errorCode"`
	Message            string   `json:"errorMessage"`
	MessageVars        []string `json:"messageVars"`
	NumericCode        int16    `json:"numericErrorCode"`
	OriginatingService string   `json:"originatingService"`
	Intent             string   `json:"intent"`
}

// NewError builds an error envelope with the service constants filled in.
func NewError(statusCode int, code, message string, numericCode int16) *Error {
	return &Error{
		StatusCode:         statusCode,
		Code:               code,
		Message:            message,
		MessageVars:        []string{},
		NumericCode:        numericCode,
		OriginatingService: OriginatingService,
		Intent:             Intent,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Code, e.NumericCode)
}

// WriteError writes the envelope with the duplicated error headers.
// The headers carry the symbolic and numeric codes and appear only on
// error responses.
func (e *Error) WriteError(w http.ResponseWriter) {
	w.Header().Set("X-Epic-Error-Name", e.Code)
	w.Header().Set("X-Epic-Error-Code", strconv.Itoa(int(e.NumericCode)))
	httpx.WriteJSON(w, e.StatusCode, e)
}

var (
	// ErrInvalidClient is returned when the Authorization header is
	// missing or cannot be decoded into a client identifier. All header
	// failure modes share this one envelope; the platform does not
	// distinguish the causes.
	ErrInvalidClient = NewError(
		http.StatusBadRequest,
		"errors.com.epicgames.common.oauth.invalid_client",
		"It appears that your Authorization header may be invalid or not present, please verify that you are sending the correct headers.",
		1011,
	)

	// ErrInvalidRequestBody is returned when the request body cannot be
	// parsed as a url-encoded form.
	ErrInvalidRequestBody = NewError(
		http.StatusBadRequest,
		"errors.com.epicgames.common.oauth.invalid_request",
		"Invalid request body.",
		1013,
	)

	// ErrExchangeCodeRequired is returned when the exchange_code form
	// field is absent for an exchange_code grant.
	ErrExchangeCodeRequired = NewError(
		http.StatusBadRequest,
		"errors.com.epicgames.common.oauth.invalid_request",
		"Exchange code is required.",
		1013,
	)

	// ErrRefreshTokenRequired is returned when the refresh_token form
	// field is absent for a refresh_token grant.
	ErrRefreshTokenRequired = NewError(
		http.StatusBadRequest,
		"errors.com.epicgames.common.oauth.invalid_request",
		"Refresh token is required.",
		1013,
	)

	// ErrExchangeCodeNotFound is returned for unknown or expired
	// exchange codes. Note the 401 here versus 400 for refresh tokens;
	// the inconsistency is the platform's and is preserved.
	ErrExchangeCodeNotFound = NewError(
		http.StatusUnauthorized,
		"errors.com.epicgames.account.oauth.exchange_code_not_found",
		"Sorry the exchange code you supplied was not found. It is possible that it was no longer valid",
		18057,
	)

	// ErrInvalidRefreshToken is returned for unknown or expired refresh
	// tokens.
	ErrInvalidRefreshToken = NewError(
		http.StatusBadRequest,
		"errors.com.epicgames.account.auth_token.invalid_refresh_token",
		"Sorry the refresh token '${refresh_token}' is invalid",
		18036,
	)

	// ErrUnsupportedGrantType is returned for the password grant, which
	// is deliberately rejected, and for grant strings outside the
	// protocol's closed set.
	ErrUnsupportedGrantType = NewError(
		http.StatusUnauthorized,
		"errors.com.epicgames.common.oauth.unsupported_grant_type",
		"Sorry password auth is not supported. Try logging in again from the Glyph launcher.",
		1016,
	)

	// ErrInternalServerError is the generic 500 envelope. Causes are
	// logged server-side and never serialized to the client.
	ErrInternalServerError = NewError(
		http.StatusInternalServerError,
		"errors.com.epicgames.common.internal_server_error",
		"Something went wrong",
		-1,
	)
)

// UnsupportedGrantError builds the 1016 envelope for grant strings
// outside the protocol's closed set.
func UnsupportedGrantError(grant string) *Error {
	return NewError(
		http.StatusUnauthorized,
		"errors.com.epicgames.common.oauth.unsupported_grant_type",
		fmt.Sprintf("Unsupported grant type: %s", grant),
		1016,
	)
}
