package jwtx

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOrderedClaimsMarshalPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	c := NewOrderedClaims().
		Set("zeta", "1").
		Set("alpha", "2").
		Set("mid", "3")

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	require.Equal(t, `{"zeta":"1","alpha":"2","mid":"3"}`, string(raw))
}

func TestOrderedClaimsSetOverwritesInPlace(t *testing.T) {
	t.Parallel()

	c := NewOrderedClaims().
		Set("a", "1").
		Set("b", "2").
		Set("a", "changed")

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	require.Equal(t, `{"a":"changed","b":"2"}`, string(raw))
	require.Equal(t, []string{"a", "b"}, c.Keys())
	require.Equal(t, 2, c.Len())
}

func TestOrderedClaimsMarshalEscapesValues(t *testing.T) {
	t.Parallel()

	c := NewOrderedClaims().Set("dn", `quo"ted`)

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, `quo"ted`, decoded["dn"])
}

func TestOrderedClaimsNumericDates(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Unix()
	c := NewOrderedClaims().Set("exp", strconv.FormatInt(exp, 10))

	got, err := c.GetExpirationTime()
	require.NoError(t, err)
	require.Equal(t, exp, got.Unix())

	iat, err := c.GetIssuedAt()
	require.NoError(t, err)
	require.Nil(t, iat, "absent claim yields nil date")

	c.Set("iat", "garbage")
	_, err = c.GetIssuedAt()
	require.Error(t, err)
}
