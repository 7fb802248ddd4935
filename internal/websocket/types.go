package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// message type constants for websocket communication
const (
	// is sent whenever the acting user's profile changes, and once on connect
	TypeUserUpdated = "user_updated"

	// is sent by server before shutdown
	TypeServerShutdown = "server_shutdown"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 4 * 1024

	// outgoing messages buffered per client
	sendBufferSize = 16
)

// envelope of every frame on the user stream
type Message struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// builds a message with a JSON encoded payload
func NewMessage(msgType string, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   raw,
	}, nil
}

// returns the frame sent on the wire
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// a message addressed to every connection of one user
type Delivery struct {
	UserID  string
	Message *Message
}

// routes user updates to connected clients
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*Client]struct{}
	running  bool
	shutdown chan struct{}
	stopped  chan struct{}

	Register   chan *Client
	Unregister chan *Client
	Publish    chan Delivery
}

// a single websocket connection of a user
type Client struct {
	UserID string
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	closed bool
	mu     sync.Mutex
}
