package websocket

import (
	"errors"

	"codeberg.org/capworks/portal/internal/logger"
)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Publish:    make(chan Delivery, 64),
		shutdown:   make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// starts the hub's main loop
func (h *Hub) Run() {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	defer close(h.stopped)

	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case delivery := <-h.Publish:
			h.deliver(delivery)

		case <-h.shutdown:
			h.closeAllConnections()
			return
		}
	}
}

// stops the main loop after notifying every client
func (h *Hub) Shutdown() {
	h.mu.RLock()
	running := h.running
	h.mu.RUnlock()

	close(h.shutdown)

	if running {
		<-h.stopped
	}
}

var ErrPublishQueueFull = errors.New("publish queue full")

// queues a message for every connection of userID without blocking
func (h *Hub) Notify(userID, msgType string, payload any) error {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return err
	}

	select {
	case h.Publish <- Delivery{UserID: userID, Message: msg}:
		return nil
	default:
		return ErrPublishQueueFull
	}
}

// returns the number of live connections of a user
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

// returns the number of live connections across all users
func (h *Hub) TotalConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}

	return total
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]struct{})
	}

	h.clients[client.UserID][client] = struct{}{}

	logger.Info("client registered", "user_id", client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[client.UserID]
	if !ok {
		return
	}

	if _, ok := conns[client]; !ok {
		return
	}

	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, client.UserID)
	}

	client.closeSend()

	logger.Info("client unregistered", "user_id", client.UserID)
}

func (h *Hub) deliver(delivery Delivery) {
	data, err := delivery.Message.Encode()
	if err != nil {
		logger.ErrorErr(err, "failed to marshal message", "type", delivery.Message.Type)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[delivery.UserID] {
		if err := client.Send(data); err != nil {
			logger.Warn("dropping message for slow client",
				"user_id", client.UserID,
				"type", delivery.Message.Type,
			)
		}
	}
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	shutdownMsg, err := NewMessage(TypeServerShutdown, nil)
	var data []byte
	if err == nil {
		data, _ = shutdownMsg.Encode() //nolint:errcheck // static payload
	}

	for userID, conns := range h.clients {
		for client := range conns {
			if data != nil {
				client.Send(data) //nolint:errcheck,gosec // best-effort notice on shutdown
			}
			client.closeSend()
		}
		delete(h.clients, userID)
	}
}
