package client

import "context"

// User is the account view returned by the server.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Dashboard is the response to an authenticated dashboard request.
type Dashboard struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type Client interface {
	Register(ctx context.Context, name, email string, password []byte) (*Session, error)
	Login(ctx context.Context, email string, password []byte) (*Session, error)
	Dashboard(ctx context.Context, token string) (*Dashboard, error)
	Logout(ctx context.Context, token string) (string, error)
	Ping(ctx context.Context) error
}
