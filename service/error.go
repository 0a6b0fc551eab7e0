package service

import "errors"

var (
	ErrTokenMissing = errors.New("missing or invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)
