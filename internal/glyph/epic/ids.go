package epic

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a random 128-bit identifier in the platform's compact
// form: a v4 UUID with the dash separators stripped. Account ids,
// device ids and "jti" nonces all use this shape.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
