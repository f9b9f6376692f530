package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicatePhoneNumber = errors.New("phone number already registered")
)
