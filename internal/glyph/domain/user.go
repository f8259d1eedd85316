package domain

import "time"

// Platform identifies where an account originated.
type Platform string

const (
	PlatformEpicPC      Platform = "epic_pc"
	PlatformEpicAndroid Platform = "epic_android"
	PlatformPSN         Platform = "psn"
	PlatformLive        Platform = "live"
	PlatformNintendo    Platform = "nintendo"
	PlatformIOS         Platform = "ios_app_store"
)

// User is a directory entry. Accounts are created once at signup and
// never deleted by the token core; the core consumes them read-only.
type User struct {
	ID          string // ULID row id
	AccountID   string // stable 128-bit identifier, compact (dash-free) form
	ExternalID  string // identity at the upstream provider the user signed in with
	DisplayName string
	Banned      bool
	Platform    Platform
	LastLoginAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
