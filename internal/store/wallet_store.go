package store

import (
	"context"
	"database/sql"
	"errors"

	"bitwallet/internal/db"
	"bitwallet/internal/models"

	"github.com/jmoiron/sqlx"
)

// WalletStore owns wallet balances and ownership. Every balance mutation goes
// through Withdraw/Deposit; the per-owner quota is enforced at creation time
// inside a serializable transaction so two concurrent creations cannot both
// pass the count check.
type WalletStore struct {
	db             DB
	txRunner       db.TxRunner
	maxPerOwner    int
	defaultBalance int64
}

func NewWalletStore(database DB, txRunner db.TxRunner, maxPerOwner int, defaultBalanceSats int64) *WalletStore {
	return &WalletStore{
		db:             database,
		txRunner:       txRunner,
		maxPerOwner:    maxPerOwner,
		defaultBalance: defaultBalanceSats,
	}
}

func (s *WalletStore) CreateWallet(ctx context.Context, ownerID int64) (models.Wallet, error) {
	var wallet models.Wallet
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, ownerID); err != nil {
			return err
		}
		if !exists {
			return ErrOwnerNotFound
		}
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM wallets WHERE owner_id = $1`, ownerID); err != nil {
			return err
		}
		if count >= s.maxPerOwner {
			return ErrWalletQuotaExceeded
		}
		return tx.GetContext(ctx, &wallet, `
			INSERT INTO wallets (owner_id, balance_sats)
			VALUES ($1, $2)
			RETURNING address, owner_id, balance_sats, created_at
		`, ownerID, s.defaultBalance)
	})
	if err != nil {
		return models.Wallet{}, err
	}
	return wallet, nil
}

func (s *WalletStore) GetWallet(ctx context.Context, ownerID, address int64) (models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.GetContext(ctx, &wallet, `
		SELECT address, owner_id, balance_sats, created_at
		FROM wallets
		WHERE address = $1
	`, address)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Wallet{}, ErrWalletNotFound
	}
	if err != nil {
		return models.Wallet{}, err
	}
	// A foreign wallet reads the same as a missing one so its balance and
	// existence are not disclosed to non-owners.
	if wallet.OwnerID != ownerID {
		return models.Wallet{}, ErrWalletNotFound
	}
	return wallet, nil
}

func (s *WalletStore) Withdraw(ctx context.Context, address, amountSats int64) error {
	if amountSats <= 0 {
		return ErrInvalidAmount
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE wallets
		SET balance_sats = balance_sats - $1
		WHERE address = $2 AND balance_sats >= $1
	`, amountSats, address)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		return nil
	}
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM wallets WHERE address = $1)`, address); err != nil {
		return err
	}
	if !exists {
		return ErrWalletNotFound
	}
	return ErrInsufficientFunds
}

func (s *WalletStore) Deposit(ctx context.Context, address, amountSats int64) error {
	if amountSats <= 0 {
		return ErrInvalidAmount
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE wallets
		SET balance_sats = balance_sats + $1
		WHERE address = $2
	`, amountSats, address)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (s *WalletStore) OwnerOf(ctx context.Context, address int64) (int64, error) {
	var ownerID int64
	err := s.db.GetContext(ctx, &ownerID, `SELECT owner_id FROM wallets WHERE address = $1`, address)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrWalletNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

func (s *WalletStore) SameOwner(ctx context.Context, first, second int64) (bool, error) {
	var rows []models.Wallet
	err := s.db.SelectContext(ctx, &rows, `
		SELECT address, owner_id, balance_sats, created_at
		FROM wallets
		WHERE address IN ($1, $2)
	`, first, second)
	if err != nil {
		return false, err
	}
	owners := make(map[int64]int64, len(rows))
	for _, row := range rows {
		owners[row.Address] = row.OwnerID
	}
	firstOwner, firstOK := owners[first]
	secondOwner, secondOK := owners[second]
	if !firstOK || !secondOK {
		return false, nil
	}
	return firstOwner == secondOwner, nil
}

func (s *WalletStore) WalletsForOwner(ctx context.Context, ownerID int64) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := s.db.SelectContext(ctx, &wallets, `
		SELECT address, owner_id, balance_sats, created_at
		FROM wallets
		WHERE owner_id = $1
		ORDER BY address
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return wallets, nil
}
