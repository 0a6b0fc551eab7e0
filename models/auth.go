package models

// LoginRequest represents the login request body. Fields are optional at
// the binding level: missing credentials simply fail the comparison and
// reject as invalid credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response body.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
