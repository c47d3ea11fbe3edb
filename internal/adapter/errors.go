package adapter

import "errors"

var (
	ErrBadCode             = errors.New("bad sync request")
	ErrCodeNotFound        = errors.New("code expired or not found")
	ErrInternalServerError = errors.New("internal server error")
)
