package types

import "errors"

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrNeedNotFound     = errors.New("need not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")

	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
