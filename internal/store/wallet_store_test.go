package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"bitwallet/internal/models"
)

func TestWalletStoreWithdraw(t *testing.T) {
	ctx := context.Background()
	store := NewWalletStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "balance_sats = balance_sats - $1") || !strings.Contains(query, "balance_sats >= $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != int64(500) || args[1] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}, nil, 3, 100)
	if err := store.Withdraw(ctx, 7, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWalletStoreWithdrawInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	store := NewWalletStore(stubDB{
		execFn: func(_ context.Context, _ string, _ ...any) (sql.Result, error) {
			return stubResult{rows: 0}, nil
		},
		getFn: func(_ context.Context, dest any, query string, _ ...any) error {
			if !strings.Contains(query, "SELECT EXISTS") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*bool) = true
			return nil
		},
	}, nil, 3, 100)
	if err := store.Withdraw(ctx, 7, 500); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestWalletStoreWithdrawUnknownWallet(t *testing.T) {
	ctx := context.Background()
	store := NewWalletStore(stubDB{
		execFn: func(_ context.Context, _ string, _ ...any) (sql.Result, error) {
			return stubResult{rows: 0}, nil
		},
		getFn: func(_ context.Context, dest any, _ string, _ ...any) error {
			*dest.(*bool) = false
			return nil
		},
	}, nil, 3, 100)
	if err := store.Withdraw(ctx, 7, 500); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWalletStoreWithdrawRejectsNonPositive(t *testing.T) {
	store := NewWalletStore(stubDB{
		execFn: func(_ context.Context, _ string, _ ...any) (sql.Result, error) {
			t.Fatalf("unexpected store call")
			return stubResult{}, nil
		},
	}, nil, 3, 100)
	if err := store.Withdraw(context.Background(), 7, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestWalletStoreDepositUnknownWallet(t *testing.T) {
	store := NewWalletStore(stubDB{
		execFn: func(_ context.Context, query string, _ ...any) (sql.Result, error) {
			if !strings.Contains(query, "balance_sats = balance_sats + $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			return stubResult{rows: 0}, nil
		},
	}, nil, 3, 100)
	if err := store.Deposit(context.Background(), 9, 100); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWalletStoreGetWalletHidesForeignWallet(t *testing.T) {
	store := NewWalletStore(stubDB{
		getFn: func(_ context.Context, dest any, _ string, _ ...any) error {
			*dest.(*models.Wallet) = models.Wallet{Address: 4, OwnerID: 99, BalanceSats: 100}
			return nil
		},
	}, nil, 3, 100)
	if _, err := store.GetWallet(context.Background(), 1, 4); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWalletStoreSameOwner(t *testing.T) {
	store := NewWalletStore(stubDB{
		selectFn: func(_ context.Context, dest any, _ string, _ ...any) error {
			*dest.(*[]models.Wallet) = []models.Wallet{
				{Address: 1, OwnerID: 10},
				{Address: 2, OwnerID: 10},
			}
			return nil
		},
	}, nil, 3, 100)
	same, err := store.SameOwner(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !same {
		t.Fatalf("expected same owner")
	}
}

func TestWalletStoreSameOwnerUnknownAddress(t *testing.T) {
	store := NewWalletStore(stubDB{
		selectFn: func(_ context.Context, dest any, _ string, _ ...any) error {
			*dest.(*[]models.Wallet) = []models.Wallet{{Address: 1, OwnerID: 10}}
			return nil
		},
	}, nil, 3, 100)
	same, err := store.SameOwner(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same {
		t.Fatalf("expected false when an address is unknown")
	}
}
