package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrAlreadyClaimed = errors.New("article already claimed")
	ErrNotRetryable   = errors.New("article not in a retryable state")
)
