package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes token for the rest of its lifetime.
	Logout(ctx context.Context, token string) error
}
