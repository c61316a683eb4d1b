package services

import (
	"context"
	"fmt"
	"sort"

	"bitwallet/internal/models"
	"bitwallet/internal/notify"

	"github.com/rs/zerolog/log"
)

type WalletStore interface {
	CreateWallet(ctx context.Context, ownerID int64) (models.Wallet, error)
	GetWallet(ctx context.Context, ownerID, address int64) (models.Wallet, error)
	Withdraw(ctx context.Context, address, amountSats int64) error
	Deposit(ctx context.Context, address, amountSats int64) error
	SameOwner(ctx context.Context, first, second int64) (bool, error)
	WalletsForOwner(ctx context.Context, ownerID int64) ([]models.Wallet, error)
	OwnerOf(ctx context.Context, address int64) (int64, error)
}

type TransactionStore interface {
	Append(ctx context.Context, rec models.TransactionRecord) (int64, error)
	Remove(ctx context.Context, id int64) error
	ForWallet(ctx context.Context, address int64) ([]models.TransactionRecord, error)
	Count(ctx context.Context) (int64, error)
}

type ProfitStore interface {
	Append(ctx context.Context, transactionID, profitSats int64) (int64, error)
	Total(ctx context.Context) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, username, apiKey string) (models.User, error)
	Resolve(ctx context.Context, apiKey string) (int64, error)
}

type Notifier interface {
	Publish(event notify.TransferEvent)
}

// TransferService coordinates a transfer across the wallet ledger, the
// transaction log and the profit ledger. The three stores commit
// independently, so the forward steps are paired with explicit compensations
// that run in reverse order when a later step fails: the ledger must never be
// left debited without a matching credit.
type TransferService struct {
	wallets      WalletStore
	transactions TransactionStore
	profits      ProfitStore
	users        UserStore
	notifier     Notifier
	locks        *walletLocks
}

func NewTransferService(wallets WalletStore, transactions TransactionStore, profits ProfitStore, users UserStore, notifier Notifier) *TransferService {
	return &TransferService{
		wallets:      wallets,
		transactions: transactions,
		profits:      profits,
		users:        users,
		notifier:     notifier,
		locks:        newWalletLocks(),
	}
}

// Transfer moves amountSats between two wallets as one all-or-nothing unit of
// work. The caller's API key must resolve to the owner of the sending wallet;
// that check is the sole authorization gate for the whole operation.
func (s *TransferService) Transfer(ctx context.Context, apiKey string, fromAddress, toAddress, amountSats int64) (models.TransactionRecord, error) {
	if amountSats <= 0 {
		return models.TransactionRecord{}, ErrInvalidAmount
	}
	if fromAddress == toAddress {
		return models.TransactionRecord{}, ErrSameWalletTransfer
	}
	ownerID, err := s.users.Resolve(ctx, apiKey)
	if err != nil {
		return models.TransactionRecord{}, err
	}
	owned, err := s.wallets.WalletsForOwner(ctx, ownerID)
	if err != nil {
		return models.TransactionRecord{}, fmt.Errorf("load caller wallets: %w", err)
	}
	if !containsAddress(owned, fromAddress) {
		return models.TransactionRecord{}, ErrWalletNotAccessible
	}

	// Both wallet locks are held for the full forward and compensation
	// sequence, so no reader observes a debited-but-uncredited state.
	unlock := s.locks.lockPair(fromAddress, toAddress)
	defer unlock()

	sameOwner, err := s.wallets.SameOwner(ctx, fromAddress, toAddress)
	if err != nil {
		return models.TransactionRecord{}, fmt.Errorf("classify transfer: %w", err)
	}
	kind := models.KindCrossUser
	if sameOwner {
		kind = models.KindSimple
	}
	profitSats := models.ProfitFor(kind, amountSats)

	if err := s.wallets.Withdraw(ctx, fromAddress, amountSats); err != nil {
		return models.TransactionRecord{}, err
	}
	if err := s.wallets.Deposit(ctx, toAddress, amountSats); err != nil {
		if compErr := s.wallets.Deposit(ctx, fromAddress, amountSats); compErr != nil {
			return models.TransactionRecord{}, s.compensationFailure(fromAddress, toAddress, compErr)
		}
		return models.TransactionRecord{}, err
	}

	rec := models.TransactionRecord{
		SenderAddress:   fromAddress,
		ReceiverAddress: toAddress,
		AmountSats:      amountSats,
		Kind:            kind,
	}
	id, err := s.transactions.Append(ctx, rec)
	if err != nil {
		if compErr := s.reverseBalances(ctx, fromAddress, toAddress, amountSats); compErr != nil {
			return models.TransactionRecord{}, s.compensationFailure(fromAddress, toAddress, compErr)
		}
		return models.TransactionRecord{}, fmt.Errorf("%w: %v", ErrTransactionPersist, err)
	}
	rec.ID = id

	if _, err := s.profits.Append(ctx, id, profitSats); err != nil {
		if compErr := s.transactions.Remove(ctx, id); compErr != nil {
			return models.TransactionRecord{}, s.compensationFailure(fromAddress, toAddress, compErr)
		}
		if compErr := s.reverseBalances(ctx, fromAddress, toAddress, amountSats); compErr != nil {
			return models.TransactionRecord{}, s.compensationFailure(fromAddress, toAddress, compErr)
		}
		return models.TransactionRecord{}, fmt.Errorf("%w: %v", ErrProfitPersist, err)
	}

	s.publish(ctx, rec, ownerID, profitSats)
	return rec, nil
}

// reverseBalances undoes the withdraw/deposit pair in reverse order of the
// forward steps.
func (s *TransferService) reverseBalances(ctx context.Context, fromAddress, toAddress, amountSats int64) error {
	if err := s.wallets.Withdraw(ctx, toAddress, amountSats); err != nil {
		return err
	}
	return s.wallets.Deposit(ctx, fromAddress, amountSats)
}

func (s *TransferService) compensationFailure(fromAddress, toAddress int64, cause error) error {
	log.Error().
		Err(cause).
		Int64("from_address", fromAddress).
		Int64("to_address", toAddress).
		Msg("transfer compensation failed, manual reconciliation required")
	return fmt.Errorf("%w: %v", ErrCompensationFailed, cause)
}

func (s *TransferService) publish(ctx context.Context, rec models.TransactionRecord, fromOwnerID int64, profitSats int64) {
	if s.notifier == nil {
		return
	}
	toOwnerID, err := s.wallets.OwnerOf(ctx, rec.ReceiverAddress)
	if err != nil {
		log.Warn().Err(err).Int64("address", rec.ReceiverAddress).Msg("could not resolve receiver owner for notification")
		toOwnerID = 0
	}
	s.notifier.Publish(notify.TransferEvent{
		Record:      rec,
		FromOwnerID: fromOwnerID,
		ToOwnerID:   toOwnerID,
		ProfitSats:  profitSats,
	})
}

// WalletHistory lists every transfer touching a wallet. Only the API key is
// verified; read access is account-scoped, not wallet-scoped, mirroring the
// long-standing behavior of the public API.
func (s *TransferService) WalletHistory(ctx context.Context, apiKey string, address int64) ([]models.TransactionRecord, error) {
	if _, err := s.users.Resolve(ctx, apiKey); err != nil {
		return nil, err
	}
	return s.transactions.ForWallet(ctx, address)
}

// OwnerHistory unions the histories of every wallet the caller owns,
// deduplicated by transaction id (a transfer between two of the caller's own
// wallets appears once).
func (s *TransferService) OwnerHistory(ctx context.Context, apiKey string) ([]models.TransactionRecord, error) {
	ownerID, err := s.users.Resolve(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	wallets, err := s.wallets.WalletsForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{})
	var history []models.TransactionRecord
	for _, wallet := range wallets {
		records, err := s.transactions.ForWallet(ctx, wallet.Address)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			history = append(history, rec)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].ID < history[j].ID })
	return history, nil
}

func containsAddress(wallets []models.Wallet, address int64) bool {
	for _, wallet := range wallets {
		if wallet.Address == address {
			return true
		}
	}
	return false
}
