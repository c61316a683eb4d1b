package websocket

import (
	"encoding/json"
	"sync"

	"bitwallet/internal/money"
	"bitwallet/internal/notify"
)

// TransferNotice is the message pushed to a connected owner when one of their
// wallets takes part in a completed transfer.
type TransferNotice struct {
	TransactionID   int64  `json:"transaction_id"`
	SenderAddress   int64  `json:"sender_address"`
	ReceiverAddress int64  `json:"receiver_address"`
	AmountBTC       string `json:"amount_btc"`
	Kind            string `json:"kind"`
	Direction       string `json:"direction"`
}

// Hub fans completed transfers out to the websocket connections of the owners
// involved. Delivery is best effort; a client with a full send buffer is
// skipped rather than blocking the transfer path.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(ownerID int64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[ownerID] == nil {
		h.clients[ownerID] = make(map[*Client]struct{})
	}
	h.clients[ownerID][client] = struct{}{}
}

func (h *Hub) Unregister(ownerID int64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[ownerID] == nil {
		return
	}
	delete(h.clients[ownerID], client)
	if len(h.clients[ownerID]) == 0 {
		delete(h.clients, ownerID)
	}
}

// OnTransferCompleted implements notify.Observer. The sender's owner gets a
// "sent" notice and the receiver's owner a "received" one; a same-owner
// transfer produces a single "sent" notice.
func (h *Hub) OnTransferCompleted(event notify.TransferEvent) {
	notice := TransferNotice{
		TransactionID:   event.Record.ID,
		SenderAddress:   event.Record.SenderAddress,
		ReceiverAddress: event.Record.ReceiverAddress,
		AmountBTC:       money.FormatBTC(event.Record.AmountSats),
		Kind:            string(event.Record.Kind),
	}
	notice.Direction = "sent"
	h.push(event.FromOwnerID, notice)
	if event.ToOwnerID != 0 && event.ToOwnerID != event.FromOwnerID {
		notice.Direction = "received"
		h.push(event.ToOwnerID, notice)
	}
}

func (h *Hub) push(ownerID int64, notice TransferNotice) {
	payload, err := json.Marshal(notice)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[ownerID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
