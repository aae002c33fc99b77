package models

import "errors"

var (
	ErrDuplicateName      = errors.New("sweet already exists")
	ErrNotFound           = errors.New("sweet not found")
	ErrOutOfStock         = errors.New("sweet out of stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access denied")
)
