package usecase

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDeveloperNotFound = errors.New("developer not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInternal          = errors.New("internal error")
)
