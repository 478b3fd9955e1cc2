package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPhoneExists  = errors.New("phone number already registered")
)
