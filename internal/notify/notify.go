package notify

import (
	"sync"

	"bitwallet/internal/models"

	"github.com/rs/zerolog/log"
)

// TransferEvent describes a fully committed transfer. Owner ids accompany the
// record so observers can route by user without a ledger lookup.
type TransferEvent struct {
	Record      models.TransactionRecord
	FromOwnerID int64
	ToOwnerID   int64
	ProfitSats  int64
}

// Observer receives completed transfers. Implementations must tolerate being
// called from the transfer path; slow work belongs on the observer's side.
type Observer interface {
	OnTransferCompleted(event TransferEvent)
}

// Bus fans a committed transfer out to subscribers. Delivery is synchronous
// and best effort: a panicking observer is logged and skipped, it cannot fail
// the already-committed transfer or starve other observers.
type Bus struct {
	mu        sync.RWMutex
	observers map[Observer]struct{}
}

func NewBus() *Bus {
	return &Bus{observers: make(map[Observer]struct{})}
}

func (b *Bus) Subscribe(observer Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers[observer] = struct{}{}
}

func (b *Bus) Unsubscribe(observer Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.observers, observer)
}

func (b *Bus) Publish(event TransferEvent) {
	b.mu.RLock()
	observers := make([]Observer, 0, len(b.observers))
	for observer := range b.observers {
		observers = append(observers, observer)
	}
	b.mu.RUnlock()
	for _, observer := range observers {
		deliver(observer, event)
	}
}

func deliver(observer Observer, event TransferEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Int64("transaction_id", event.Record.ID).
				Msg("transfer observer panicked")
		}
	}()
	observer.OnTransferCompleted(event)
}
