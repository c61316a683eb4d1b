package websocket

import (
	"encoding/json"
	"testing"

	"bitwallet/internal/models"
	"bitwallet/internal/notify"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, 4)}
}

func receiveNotice(t *testing.T, client *Client) TransferNotice {
	t.Helper()
	select {
	case payload := <-client.send:
		var notice TransferNotice
		if err := json.Unmarshal(payload, &notice); err != nil {
			t.Fatalf("unmarshal notice: %v", err)
		}
		return notice
	default:
		t.Fatal("no message delivered")
		return TransferNotice{}
	}
}

func TestHubNotifiesBothOwners(t *testing.T) {
	hub := NewHub()
	sender := newTestClient()
	receiver := newTestClient()
	hub.Register(1, sender)
	hub.Register(2, receiver)

	hub.OnTransferCompleted(notify.TransferEvent{
		Record: models.TransactionRecord{
			ID:              9,
			SenderAddress:   10,
			ReceiverAddress: 20,
			AmountSats:      150_000_000,
			Kind:            models.KindCrossUser,
		},
		FromOwnerID: 1,
		ToOwnerID:   2,
	})

	sent := receiveNotice(t, sender)
	if sent.Direction != "sent" || sent.TransactionID != 9 || sent.AmountBTC != "1.50000000" {
		t.Fatalf("unexpected sender notice: %+v", sent)
	}
	received := receiveNotice(t, receiver)
	if received.Direction != "received" || received.Kind != string(models.KindCrossUser) {
		t.Fatalf("unexpected receiver notice: %+v", received)
	}
}

func TestHubSameOwnerGetsSingleNotice(t *testing.T) {
	hub := NewHub()
	client := newTestClient()
	hub.Register(1, client)

	hub.OnTransferCompleted(notify.TransferEvent{
		Record:      models.TransactionRecord{ID: 1, SenderAddress: 10, ReceiverAddress: 11, AmountSats: 1, Kind: models.KindSimple},
		FromOwnerID: 1,
		ToOwnerID:   1,
	})

	notice := receiveNotice(t, client)
	if notice.Direction != "sent" {
		t.Fatalf("direction = %q", notice.Direction)
	}
	select {
	case extra := <-client.send:
		t.Fatalf("unexpected second message: %s", extra)
	default:
	}
}

func TestHubSkipsFullClients(t *testing.T) {
	hub := NewHub()
	full := &Client{send: make(chan []byte)}
	hub.Register(1, full)

	done := make(chan struct{})
	go func() {
		hub.OnTransferCompleted(notify.TransferEvent{
			Record:      models.TransactionRecord{ID: 1, AmountSats: 1, Kind: models.KindSimple},
			FromOwnerID: 1,
		})
		close(done)
	}()
	<-done
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	client := newTestClient()
	hub.Register(1, client)
	hub.Unregister(1, client)

	hub.OnTransferCompleted(notify.TransferEvent{
		Record:      models.TransactionRecord{ID: 1, AmountSats: 1, Kind: models.KindSimple},
		FromOwnerID: 1,
	})
	select {
	case payload := <-client.send:
		t.Fatalf("unexpected message after unregister: %s", payload)
	default:
	}
}
