package model

import "errors"

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenTypeMismatch = errors.New("token type mismatch")
	ErrTokenMalformed    = errors.New("token malformed")
)
