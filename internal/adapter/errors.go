package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrRejected            = errors.New("request rejected by injection check")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrEmptyAddress        = errors.New("empty address")
)
