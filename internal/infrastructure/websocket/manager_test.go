package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordernest/internal/domain/entity"
)

func TestNotifyOrderUpdateReachesBothParties(t *testing.T) {
	m := NewManager()
	customer := &Client{UserID: "customer-1", Send: make(chan []byte, 1)}
	retailer := &Client{UserID: "retailer-1", Send: make(chan []byte, 1)}
	m.clients["customer-1"] = customer
	m.clients["retailer-1"] = retailer

	order := &entity.Order{
		ID:         "order-1",
		FormID:     "form-1",
		CustomerID: "customer-1",
		RetailerID: "retailer-1",
	}
	update := &entity.OrderUpdate{
		ID:     "update-1",
		Status: entity.OrderStatusProcessing,
	}

	m.NotifyOrderUpdate(order, update)

	for _, client := range []*Client{customer, retailer} {
		select {
		case payload := <-client.Send:
			var event map[string]interface{}
			require.NoError(t, json.Unmarshal(payload, &event))
			assert.Equal(t, "order_update", event["type"])
			assert.Equal(t, "order-1", event["order_id"])
			assert.Equal(t, "processing", event["status"])
		default:
			t.Fatalf("no event delivered to %s", client.UserID)
		}
	}
}

func TestSendToUserDropsSlowConsumerExactlyOnce(t *testing.T) {
	m := NewManager()
	// no buffer and no reader, so every send takes the drop path
	slow := &Client{UserID: "customer-1", Send: make(chan []byte)}
	m.clients["customer-1"] = slow

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.SendToUser("customer-1", []byte("event"))
		}()
	}
	wg.Wait()

	m.mutex.RLock()
	_, ok := m.clients["customer-1"]
	m.mutex.RUnlock()
	assert.False(t, ok)

	// channel is closed exactly once; a receive must not block
	_, open := <-slow.Send
	assert.False(t, open)
}
