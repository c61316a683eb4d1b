package services

import "sync"

// walletLocks hands out one mutex per wallet address so a balance is mutated
// by at most one in-flight transfer at a time. Mutexes are never reclaimed;
// wallets are never deleted and their count stays small.
type walletLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newWalletLocks() *walletLocks {
	return &walletLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *walletLocks) lockFor(address int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[address]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[address] = lock
	}
	return lock
}

// lockPair acquires both wallet locks in ascending address order so two
// opposing transfers between the same wallets cannot deadlock. The returned
// function releases both.
func (l *walletLocks) lockPair(first, second int64) func() {
	leftAddr, rightAddr := orderedAddresses(first, second)
	left := l.lockFor(leftAddr)
	left.Lock()
	if leftAddr == rightAddr {
		return left.Unlock
	}
	right := l.lockFor(rightAddr)
	right.Lock()
	return func() {
		right.Unlock()
		left.Unlock()
	}
}

func orderedAddresses(first, second int64) (int64, int64) {
	if first <= second {
		return first, second
	}
	return second, first
}
