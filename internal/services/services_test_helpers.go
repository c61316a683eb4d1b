package services

import (
	"context"

	"bitwallet/internal/models"
	"bitwallet/internal/notify"

	"github.com/shopspring/decimal"
)

type stubWalletStore struct {
	createFn    func(ctx context.Context, ownerID int64) (models.Wallet, error)
	getFn       func(ctx context.Context, ownerID, address int64) (models.Wallet, error)
	withdrawFn  func(ctx context.Context, address, amountSats int64) error
	depositFn   func(ctx context.Context, address, amountSats int64) error
	sameOwnerFn func(ctx context.Context, first, second int64) (bool, error)
	forOwnerFn  func(ctx context.Context, ownerID int64) ([]models.Wallet, error)
	ownerOfFn   func(ctx context.Context, address int64) (int64, error)
}

func (s stubWalletStore) CreateWallet(ctx context.Context, ownerID int64) (models.Wallet, error) {
	if s.createFn == nil {
		return models.Wallet{}, nil
	}
	return s.createFn(ctx, ownerID)
}

func (s stubWalletStore) GetWallet(ctx context.Context, ownerID, address int64) (models.Wallet, error) {
	if s.getFn == nil {
		return models.Wallet{}, nil
	}
	return s.getFn(ctx, ownerID, address)
}

func (s stubWalletStore) Withdraw(ctx context.Context, address, amountSats int64) error {
	if s.withdrawFn == nil {
		return nil
	}
	return s.withdrawFn(ctx, address, amountSats)
}

func (s stubWalletStore) Deposit(ctx context.Context, address, amountSats int64) error {
	if s.depositFn == nil {
		return nil
	}
	return s.depositFn(ctx, address, amountSats)
}

func (s stubWalletStore) SameOwner(ctx context.Context, first, second int64) (bool, error) {
	if s.sameOwnerFn == nil {
		return false, nil
	}
	return s.sameOwnerFn(ctx, first, second)
}

func (s stubWalletStore) WalletsForOwner(ctx context.Context, ownerID int64) ([]models.Wallet, error) {
	if s.forOwnerFn == nil {
		return nil, nil
	}
	return s.forOwnerFn(ctx, ownerID)
}

func (s stubWalletStore) OwnerOf(ctx context.Context, address int64) (int64, error) {
	if s.ownerOfFn == nil {
		return 0, nil
	}
	return s.ownerOfFn(ctx, address)
}

type stubTransactionStore struct {
	appendFn    func(ctx context.Context, rec models.TransactionRecord) (int64, error)
	removeFn    func(ctx context.Context, id int64) error
	forWalletFn func(ctx context.Context, address int64) ([]models.TransactionRecord, error)
	countFn     func(ctx context.Context) (int64, error)
}

func (s stubTransactionStore) Append(ctx context.Context, rec models.TransactionRecord) (int64, error) {
	if s.appendFn == nil {
		return 1, nil
	}
	return s.appendFn(ctx, rec)
}

func (s stubTransactionStore) Remove(ctx context.Context, id int64) error {
	if s.removeFn == nil {
		return nil
	}
	return s.removeFn(ctx, id)
}

func (s stubTransactionStore) ForWallet(ctx context.Context, address int64) ([]models.TransactionRecord, error) {
	if s.forWalletFn == nil {
		return nil, nil
	}
	return s.forWalletFn(ctx, address)
}

func (s stubTransactionStore) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

type stubProfitStore struct {
	appendFn func(ctx context.Context, transactionID, profitSats int64) (int64, error)
	totalFn  func(ctx context.Context) (int64, error)
}

func (s stubProfitStore) Append(ctx context.Context, transactionID, profitSats int64) (int64, error) {
	if s.appendFn == nil {
		return 1, nil
	}
	return s.appendFn(ctx, transactionID, profitSats)
}

func (s stubProfitStore) Total(ctx context.Context) (int64, error) {
	if s.totalFn == nil {
		return 0, nil
	}
	return s.totalFn(ctx)
}

type stubUserStore struct {
	createFn  func(ctx context.Context, username, apiKey string) (models.User, error)
	resolveFn func(ctx context.Context, apiKey string) (int64, error)
}

func (s stubUserStore) Create(ctx context.Context, username, apiKey string) (models.User, error) {
	if s.createFn == nil {
		return models.User{ID: 1, Username: username, APIKey: apiKey}, nil
	}
	return s.createFn(ctx, username, apiKey)
}

func (s stubUserStore) Resolve(ctx context.Context, apiKey string) (int64, error) {
	if s.resolveFn == nil {
		return 1, nil
	}
	return s.resolveFn(ctx, apiKey)
}

type stubNotifier struct {
	events []notify.TransferEvent
}

func (s *stubNotifier) Publish(event notify.TransferEvent) {
	s.events = append(s.events, event)
}

type stubConverter struct {
	rate decimal.Decimal
	err  error
}

func (s stubConverter) BTCToUSD(context.Context) (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Decimal{}, s.err
	}
	return s.rate, nil
}

func ownedWallets(addresses ...int64) func(context.Context, int64) ([]models.Wallet, error) {
	return func(_ context.Context, ownerID int64) ([]models.Wallet, error) {
		wallets := make([]models.Wallet, 0, len(addresses))
		for _, address := range addresses {
			wallets = append(wallets, models.Wallet{Address: address, OwnerID: ownerID})
		}
		return wallets, nil
	}
}
