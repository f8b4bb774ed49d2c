package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrSaveFailed      = errors.New("could not save changes")
)

// business logic errors
var (
	ErrInvalidTimestamp = errors.New("invalid timestamp filter")
)
