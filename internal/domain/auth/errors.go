package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)
