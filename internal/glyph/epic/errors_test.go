package epic

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestErrorEnvelopeWireShape(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(ErrUnsupportedGrantType)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Equal(t, "errors.com.epicgames.common.oauth.unsupported_grant_type", decoded["errorCode"])
	require.Equal(t, float64(1016), decoded["numericErrorCode"])
	require.Equal(t, "any", decoded["originatingService"])
	require.Equal(t, "prod", decoded["intent"])
	require.Contains(t, decoded, "errorMessage")

	// messageVars must serialize as an empty list, never null.
	vars, ok := decoded["messageVars"].([]any)
	require.True(t, ok, "messageVars should be a JSON array, got %T", decoded["messageVars"])
	require.Empty(t, vars)
}

func TestWriteErrorSetsDuplicatedHeaders(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrExchangeCodeNotFound.WriteError(rec)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "errors.com.epicgames.account.oauth.exchange_code_not_found", rec.Header().Get("X-Epic-Error-Name"))
	require.Equal(t, "18057", rec.Header().Get("X-Epic-Error-Code"))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int16(18057), body.NumericCode)
}

func TestErrorStatusCodes(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusBadRequest, ErrInvalidClient.StatusCode)
	require.Equal(t, http.StatusBadRequest, ErrExchangeCodeRequired.StatusCode)
	require.Equal(t, http.StatusBadRequest, ErrRefreshTokenRequired.StatusCode)
	require.Equal(t, http.StatusUnauthorized, ErrExchangeCodeNotFound.StatusCode)
	require.Equal(t, http.StatusBadRequest, ErrInvalidRefreshToken.StatusCode)
	require.Equal(t, http.StatusUnauthorized, ErrUnsupportedGrantType.StatusCode)
	require.Equal(t, http.StatusInternalServerError, ErrInternalServerError.StatusCode)
}

func TestTimestampFormat(t *testing.T) {
	t.Parallel()

	ts := Timestamp(time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC))
	raw, err := json.Marshal(ts)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-01T12:30:45.123Z"`, string(raw))

	var back Timestamp
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, back.Time().Equal(ts.Time()))
}
