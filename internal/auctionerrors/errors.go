package auctionerrors

import "errors"

// Record-store level errors
var (
	ErrLotNotFound  = errors.New("lot not found")
	ErrUserNotFound = errors.New("user not found")
	ErrUpstream     = errors.New("record store request failed")
)

// Business logic errors
var (
	ErrInvalidAmount = errors.New("invalid bid amount")
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrSelfOutbid    = errors.New("bidder already leads the lot")
	ErrInvalidPhone  = errors.New("invalid phone number format")
)

// Conversation errors
var (
	ErrSessionExpired = errors.New("session expired")
	ErrAccessDenied   = errors.New("access denied")
)
