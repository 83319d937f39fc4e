package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid Email")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrNameRequired          = errors.New("Name is required")
	ErrInvalidEmailFormat    = errors.New("Invalid email format")
	ErrWeakPassword          = errors.New("Password must be at least 6 characters")
	ErrEmailTaken            = errors.New("Email already registered")
	ErrInvalidProfileType    = errors.New("Invalid profile type")
)
