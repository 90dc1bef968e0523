package entity

import "errors"

var (
	ErrNotFitted     = errors.New("model not fitted")
	ErrInvalidConfig = errors.New("invalid configuration")
)
