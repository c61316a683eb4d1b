package store

import "context"

// ProfitStore is the append-only ledger of derived system profit, one entry
// per completed transfer.
type ProfitStore struct {
	db DB
}

func NewProfitStore(db DB) *ProfitStore {
	return &ProfitStore{db: db}
}

func (s *ProfitStore) Append(ctx context.Context, transactionID, profitSats int64) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO profits (transaction_id, profit_sats)
		VALUES ($1, $2)
		RETURNING id
	`, transactionID, profitSats)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *ProfitStore) Total(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(profit_sats), 0) FROM profits`)
	return total, err
}
