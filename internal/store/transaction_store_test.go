package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"bitwallet/internal/models"
)

func TestTransactionStoreAppend(t *testing.T) {
	store := NewTransactionStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "INSERT INTO transactions") || !strings.Contains(query, "RETURNING id") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != int64(1) || args[1] != int64(2) || args[2] != int64(400) || args[3] != models.KindCrossUser {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*int64) = 42
			return nil
		},
	})
	id, err := store.Append(context.Background(), models.TransactionRecord{
		SenderAddress: 1, ReceiverAddress: 2, AmountSats: 400, Kind: models.KindCrossUser,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("unexpected id: %d", id)
	}
}

func TestTransactionStoreForWallet(t *testing.T) {
	store := NewTransactionStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "sender_address = $1 OR receiver_address = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]models.TransactionRecord) = []models.TransactionRecord{{ID: 1}, {ID: 2}}
			return nil
		},
	})
	records, err := store.ForWallet(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("unexpected records: %#v", records)
	}
}

func TestTransactionStoreRemove(t *testing.T) {
	called := false
	store := NewTransactionStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "DELETE FROM transactions WHERE id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != int64(42) {
				t.Fatalf("unexpected args: %#v", args)
			}
			called = true
			return stubResult{rows: 1}, nil
		},
	})
	if err := store.Remove(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected delete to run")
	}
}

func TestTransactionStoreCount(t *testing.T) {
	store := NewTransactionStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, _ ...any) error {
			if !strings.Contains(query, "SELECT COUNT(*) FROM transactions") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*int64) = 5
			return nil
		},
	})
	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Fatalf("unexpected count: %d", count)
	}
}
