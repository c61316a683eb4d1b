package store

import "errors"

// Sentinel errors shared by the Postgres and in-memory backends so callers
// can branch on outcomes without knowing which storage driver is active.
var (
	ErrOwnerNotFound       = errors.New("owner not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletQuotaExceeded = errors.New("wallet quota exceeded")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("invalid amount")
)
