package authmodel

// Credentials is the body POSTed to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response is a decoded login response. It is kept verbatim so it can be
// persisted and replayed through the same field mapping on restore.
type Response map[string]any

// TokenResponse is the login response shape produced by servers that use the
// default field names.
type TokenResponse struct {
	// Username of the authenticated principal.
	Username string `json:"username,omitempty"`

	// AccessToken is sent on every request in the Authorization header.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	AccessToken string `json:"access_token,omitempty"`

	// TokenType prefixes the access token in the Authorization header.
	// Example: "Bearer"
	TokenType string `json:"token_type,omitempty"`

	// RefreshToken is stored but never sent by the client on its own.
	RefreshToken string `json:"refresh_token,omitempty"`

	// Roles are opaque tags used for authorization checks.
	Roles []string `json:"roles,omitempty"`
}
