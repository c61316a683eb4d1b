package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transfer by wallet ownership. A simple
// transaction moves funds between two wallets of the same user; a cross-user
// transaction crosses a user boundary and earns the system a cut.
type TransactionKind string

const (
	KindSimple    TransactionKind = "simple"
	KindCrossUser TransactionKind = "cross_user"
)

// crossUserProfitRate is the system's cut on transfers between different users.
var crossUserProfitRate = decimal.RequireFromString("0.15")

// ProfitFor returns the system profit in satoshis for a completed transfer.
// Profit is derived from kind and amount only, never settable directly.
func ProfitFor(kind TransactionKind, amountSats int64) int64 {
	if kind != KindCrossUser {
		return 0
	}
	return decimal.NewFromInt(amountSats).Mul(crossUserProfitRate).RoundBank(0).IntPart()
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	APIKey    string    `db:"api_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Wallet struct {
	Address     int64     `db:"address" json:"address"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	BalanceSats int64     `db:"balance_sats" json:"balance_sats"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type TransactionRecord struct {
	ID              int64           `db:"id" json:"id"`
	SenderAddress   int64           `db:"sender_address" json:"sender_address"`
	ReceiverAddress int64           `db:"receiver_address" json:"receiver_address"`
	AmountSats      int64           `db:"amount_sats" json:"amount_sats"`
	Kind            TransactionKind `db:"kind" json:"kind"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

type ProfitEntry struct {
	ID            int64     `db:"id" json:"id"`
	TransactionID int64     `db:"transaction_id" json:"transaction_id"`
	ProfitSats    int64     `db:"profit_sats" json:"profit_sats"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
