package jwtx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OrderedClaims is a string-valued claim set that serializes its keys in
// insertion order. The emulated wire format is sensitive to payload byte
// layout, so the usual map-based claims (which marshal key-sorted) are
// not usable here.
//
// All values are strings, including numeric claims like "exp", matching
// the upstream platform's tokens.
type OrderedClaims struct {
	keys   []string
	values map[string]string
}

// NewOrderedClaims returns an empty ordered claim set.
func NewOrderedClaims() *OrderedClaims {
	return &OrderedClaims{values: make(map[string]string)}
}

// Set appends the claim, or overwrites it in place when the key is
// already present. Returns the receiver for chaining.
func (c *OrderedClaims) Set(key, value string) *OrderedClaims {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
	return c
}

// Get returns the claim value and whether it is present.
func (c *OrderedClaims) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the claim keys in insertion order.
func (c *OrderedClaims) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len reports the number of claims.
func (c *OrderedClaims) Len() int { return len(c.keys) }

// MarshalJSON emits the claims as a JSON object whose member order is
// the insertion order.
func (c *OrderedClaims) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(c.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// numericDate parses a string-encoded unix-seconds claim.
func (c *OrderedClaims) numericDate(key string) (*jwt.NumericDate, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, nil
	}

	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("jwtx: claim %q is not unix seconds: %w", key, err)
	}
	return jwt.NewNumericDate(time.Unix(secs, 0)), nil
}

// GetExpirationTime implements jwt.Claims.
func (c *OrderedClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.numericDate("exp")
}

// GetIssuedAt implements jwt.Claims.
func (c *OrderedClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return c.numericDate("iat")
}

// GetNotBefore implements jwt.Claims.
func (c *OrderedClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims.
func (c *OrderedClaims) GetIssuer() (string, error) {
	return c.values["iss"], nil
}

// GetSubject implements jwt.Claims.
func (c *OrderedClaims) GetSubject() (string, error) {
	return c.values["sub"], nil
}

// GetAudience implements jwt.Claims.
func (c *OrderedClaims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
