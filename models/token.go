package models

// TokenResponse is the body returned by POST /auth/login.
type TokenResponse struct {
	// AccessToken is the opaque bearer credential. The client treats it as an
	// opaque string; it only peeks at the "exp" claim when the value happens
	// to be a JWT.
	AccessToken string `json:"access_token"`

	// TokenType is normally "bearer".
	TokenType string `json:"token_type,omitempty"`
}
