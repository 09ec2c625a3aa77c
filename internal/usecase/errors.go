package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidState        = errors.New("invalid state")
	ErrUpstreamUnavailable = errors.New("scoring feed unavailable")
)
