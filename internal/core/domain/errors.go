package domain

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("property does not belong to this user")
)
