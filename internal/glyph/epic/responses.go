package epic

// ClientCredentialsResponse is the success body of the
// client_credentials flow. It carries no account context: the token is
// stateless and unrevocable by design.
type ClientCredentialsResponse struct {
	AccessToken    string    `json:"access_token"`
	ExpiresIn      int       `json:"expires_in"`
	ExpiresAt      Timestamp `json:"expires_at"`
	TokenType      string    `json:"token_type"`
	ClientID       string    `json:"client_id"`
	InternalClient bool      `json:"internal_client"`
	ClientService  string    `json:"client_service"`
}

// AuthResponse is the success body of the exchange_code and
// refresh_token flows: the full access/refresh pair plus owner
// metadata. The two flows share this shape but each flow owns its own
// value; nothing mutates a response once built.
type AuthResponse struct {
	AccessToken      string    `json:"access_token"`
	ExpiresIn        int64     `json:"expires_in"`
	ExpiresAt        Timestamp `json:"expires_at"`
	TokenType        string    `json:"token_type"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpires   int64     `json:"refresh_expires"`
	RefreshExpiresAt Timestamp `json:"refresh_expires_at"`
	AccountID        string    `json:"account_id"`
	ClientID         string    `json:"client_id"`
	InternalClient   bool      `json:"internal_client"`
	ClientService    string    `json:"client_service"`
	DisplayName      string    `json:"displayName"`
	App              string    `json:"app"`
	InAppID          string    `json:"in_app_id"`
	DeviceID         string    `json:"device_id"`
}
