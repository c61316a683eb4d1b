package services

import (
	"errors"

	"bitwallet/internal/rates"
	"bitwallet/internal/store"
)

// Storage-level outcomes surface unchanged so callers can branch with
// errors.Is regardless of which layer detected them.
var (
	ErrUserNotFound        = store.ErrUserNotFound
	ErrOwnerNotFound       = store.ErrOwnerNotFound
	ErrUsernameTaken       = store.ErrUsernameTaken
	ErrWalletNotFound      = store.ErrWalletNotFound
	ErrWalletQuotaExceeded = store.ErrWalletQuotaExceeded
	ErrInsufficientFunds   = store.ErrInsufficientFunds
	ErrInvalidAmount       = store.ErrInvalidAmount

	ErrConversionUnavailable = rates.ErrUnavailable
)

var (
	// ErrWalletNotAccessible rejects a transfer whose debited wallet does not
	// belong to the authenticated caller.
	ErrWalletNotAccessible = errors.New("sending wallet does not belong to authenticated user")
	ErrSameWalletTransfer  = errors.New("cannot transfer to the same wallet")
	ErrTransactionPersist  = errors.New("failed to persist transaction record")
	ErrProfitPersist       = errors.New("failed to persist profit entry")
	// ErrCompensationFailed means a rollback step itself failed and the ledger
	// needs operator attention; it is never retried automatically.
	ErrCompensationFailed = errors.New("compensation failed, ledger requires reconciliation")
	ErrUnauthorized       = errors.New("unauthorized")
)
