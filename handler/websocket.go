package handler

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"

	"payment_simulator/model"
)

// EventHub fans payment lifecycle events out to connected monitoring
// clients. Everything is in-process; the simulator has no external broker.
type EventHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	events  chan model.PaymentEvent
	logger  *zap.SugaredLogger
}

func NewEventHub(logger *zap.SugaredLogger) *EventHub {
	return &EventHub{
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan model.PaymentEvent, 256),
		logger:  logger,
	}
}

// Publish never blocks the checkout path. If monitors cannot keep up the
// event is dropped.
func (h *EventHub) Publish(event model.PaymentEvent) {
	select {
	case h.events <- event:
	default:
		h.logger.Warnw("event feed full, dropping event", "type", event.Type, "orderId", event.OrderId)
	}
}

// Run consumes the event channel and broadcasts to every client. Failed
// connections are removed.
func (h *EventHub) Run() {
	for event := range h.events {
		h.mu.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.mu.Unlock()
	}
}

// Serve handles one websocket connection until the client disconnects.
func (h *EventHub) Serve(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}()

	// Drain reads to detect the close frame; monitors never send data.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
