package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrDuplicateReference indicates a transaction with the same reference already exists
	ErrDuplicateReference = errors.New("duplicate reference")

	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrLinkAlreadySet indicates the transaction already carries different link info
	ErrLinkAlreadySet = errors.New("link info already set")
)
