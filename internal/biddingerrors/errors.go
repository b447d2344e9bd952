package biddingerrors

import "errors"

// Identity errors
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSessionNotFound = errors.New("session not found")
)

// Repository-level errors
var (
	ErrStoreUnavailable = errors.New("data store unavailable")
	ErrAuctionNotFound  = errors.New("auction not found")
)
