package handler

import "errors"

var (
	ErrNilResponse = errors.New("handler returned nil response")
	ErrNilMapping  = errors.New("error mapping requires a target")
	ErrInvalidTag  = errors.New("error mapping tag must be a non-nil comparable value")
)
