// Package memstore provides in-memory implementations of the storage
// contracts, interchangeable with the Postgres-backed store package. It backs
// the STORAGE_DRIVER=memory mode and the service-level tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"bitwallet/internal/models"
	"bitwallet/internal/store"
)

type UserStore struct {
	mu     sync.Mutex
	byKey  map[string]int64
	byName map[string]struct{}
	users  []models.User
	nextID int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		byKey:  make(map[string]int64),
		byName: make(map[string]struct{}),
		nextID: 1,
	}
}

func (s *UserStore) Create(_ context.Context, username, apiKey string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byName[username]; taken {
		return models.User{}, store.ErrUsernameTaken
	}
	user := models.User{
		ID:        s.nextID,
		Username:  username,
		APIKey:    apiKey,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.users = append(s.users, user)
	s.byKey[apiKey] = user.ID
	s.byName[username] = struct{}{}
	return user, nil
}

func (s *UserStore) Resolve(_ context.Context, apiKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byKey[apiKey]
	if !ok {
		return 0, store.ErrUserNotFound
	}
	return id, nil
}

// HasUser reports whether an owner id was previously issued.
func (s *UserStore) HasUser(_ context.Context, ownerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ownerID >= 1 && ownerID < s.nextID
}

type WalletStore struct {
	mu             sync.Mutex
	wallets        map[int64]*models.Wallet
	byOwner        map[int64][]int64
	nextAddress    int64
	maxPerOwner    int
	defaultBalance int64
	ownerExists    func(ctx context.Context, ownerID int64) bool
}

// NewWalletStore builds a wallet ledger backed by process memory. ownerExists
// guards creation against unknown owners; pass nil to accept any owner id.
func NewWalletStore(maxPerOwner int, defaultBalanceSats int64, ownerExists func(ctx context.Context, ownerID int64) bool) *WalletStore {
	return &WalletStore{
		wallets:        make(map[int64]*models.Wallet),
		byOwner:        make(map[int64][]int64),
		nextAddress:    1,
		maxPerOwner:    maxPerOwner,
		defaultBalance: defaultBalanceSats,
		ownerExists:    ownerExists,
	}
}

func (s *WalletStore) CreateWallet(ctx context.Context, ownerID int64) (models.Wallet, error) {
	if s.ownerExists != nil && !s.ownerExists(ctx, ownerID) {
		return models.Wallet{}, store.ErrOwnerNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.byOwner[ownerID]) >= s.maxPerOwner {
		return models.Wallet{}, store.ErrWalletQuotaExceeded
	}
	wallet := &models.Wallet{
		Address:     s.nextAddress,
		OwnerID:     ownerID,
		BalanceSats: s.defaultBalance,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextAddress++
	s.wallets[wallet.Address] = wallet
	s.byOwner[ownerID] = append(s.byOwner[ownerID], wallet.Address)
	return *wallet, nil
}

func (s *WalletStore) GetWallet(_ context.Context, ownerID, address int64) (models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet, ok := s.wallets[address]
	if !ok || wallet.OwnerID != ownerID {
		return models.Wallet{}, store.ErrWalletNotFound
	}
	return *wallet, nil
}

func (s *WalletStore) Withdraw(_ context.Context, address, amountSats int64) error {
	if amountSats <= 0 {
		return store.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet, ok := s.wallets[address]
	if !ok {
		return store.ErrWalletNotFound
	}
	if wallet.BalanceSats < amountSats {
		return store.ErrInsufficientFunds
	}
	wallet.BalanceSats -= amountSats
	return nil
}

func (s *WalletStore) Deposit(_ context.Context, address, amountSats int64) error {
	if amountSats <= 0 {
		return store.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet, ok := s.wallets[address]
	if !ok {
		return store.ErrWalletNotFound
	}
	wallet.BalanceSats += amountSats
	return nil
}

func (s *WalletStore) OwnerOf(_ context.Context, address int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet, ok := s.wallets[address]
	if !ok {
		return 0, store.ErrWalletNotFound
	}
	return wallet.OwnerID, nil
}

func (s *WalletStore) SameOwner(_ context.Context, first, second int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	firstWallet, firstOK := s.wallets[first]
	secondWallet, secondOK := s.wallets[second]
	if !firstOK || !secondOK {
		return false, nil
	}
	return firstWallet.OwnerID == secondWallet.OwnerID, nil
}

func (s *WalletStore) WalletsForOwner(_ context.Context, ownerID int64) ([]models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	addresses := s.byOwner[ownerID]
	wallets := make([]models.Wallet, 0, len(addresses))
	for _, address := range addresses {
		wallets = append(wallets, *s.wallets[address])
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].Address < wallets[j].Address })
	return wallets, nil
}

type TransactionStore struct {
	mu      sync.Mutex
	records []models.TransactionRecord
	nextID  int64
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{nextID: 1}
}

func (s *TransactionStore) Append(_ context.Context, rec models.TransactionRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.nextID++
	s.records = append(s.records, rec)
	return rec.ID, nil
}

func (s *TransactionStore) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *TransactionStore) ForWallet(_ context.Context, address int64) ([]models.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []models.TransactionRecord
	for _, rec := range s.records {
		if rec.SenderAddress == address || rec.ReceiverAddress == address {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func (s *TransactionStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), nil
}

type ProfitStore struct {
	mu      sync.Mutex
	entries []models.ProfitEntry
	nextID  int64
}

func NewProfitStore() *ProfitStore {
	return &ProfitStore{nextID: 1}
}

func (s *ProfitStore) Append(_ context.Context, transactionID, profitSats int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := models.ProfitEntry{
		ID:            s.nextID,
		TransactionID: transactionID,
		ProfitSats:    profitSats,
		CreatedAt:     time.Now().UTC(),
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry.ID, nil
}

func (s *ProfitStore) Total(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, entry := range s.entries {
		total += entry.ProfitSats
	}
	return total, nil
}
