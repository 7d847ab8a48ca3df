package web

import "errors"

var (
	ErrPanic         = errors.New("recovered from panic")
	ErrBadProductID  = errors.New("product id must be a positive integer")
	ErrBadArrivalDay = errors.New("arrival day must be an integer")
)
