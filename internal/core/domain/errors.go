package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("authentication failed or insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrIncorrectPassword  = errors.New("Incorrect password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrRoleNotAllowed     = errors.New("role cannot be self-assigned")
	ErrValidation         = errors.New("validation failed")
)
