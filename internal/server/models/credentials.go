package models

// RegisterRequest is the registration payload. It is never persisted.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload. It is never persisted.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
