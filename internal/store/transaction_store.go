package store

import (
	"context"

	"bitwallet/internal/models"
)

// TransactionStore is the append-only record of completed transfers. Ids are
// assigned by a BIGSERIAL so concurrent appends never collide and later reads
// see records in insertion order.
type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Append(ctx context.Context, rec models.TransactionRecord) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO transactions (sender_address, receiver_address, amount_sats, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rec.SenderAddress, rec.ReceiverAddress, rec.AmountSats, rec.Kind)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Remove undoes an Append. It exists only for the transfer saga's
// compensation path; nothing else may delete from the log.
func (s *TransactionStore) Remove(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

func (s *TransactionStore) ForWallet(ctx context.Context, address int64) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, sender_address, receiver_address, amount_sats, kind, created_at
		FROM transactions
		WHERE sender_address = $1 OR receiver_address = $1
		ORDER BY id
	`, address)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *TransactionStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transactions`)
	return count, err
}
