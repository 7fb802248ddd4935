package userstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"codeberg.org/capworks/portal/internal/logger"
	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/gorilla/websocket"
)

const (
	typeUserUpdated    = "user_updated"
	typeServerShutdown = "server_shutdown"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	writeWait  = 10 * time.Second
)

// supplies the bearer token used on the upgrade request
type TokenSource interface {
	Token() string
}

type wsMessage struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// receives user-updated events from the API. a client is single use: once
// the connection ends, Updates is closed.
type Client struct {
	endpoint string
	tokens   TokenSource

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool

	updates   chan *presenter.ActingUser
	done      chan struct{}
	stop      chan struct{}
	closeOnce sync.Once
	stopOnce  sync.Once
}

// creates a new webSocket client
func New(endpoint string, tokens TokenSource) *Client {
	return &Client{
		endpoint: endpoint,
		tokens:   tokens,
		updates:  make(chan *presenter.ActingUser, 8),
		done:     make(chan struct{}),
		stop:     make(chan struct{}),
	}
}

// establishes the websocket connection and starts the pumps
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	header := http.Header{}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.endpoint, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect: status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // pong handler
		return nil
	})
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // initial deadline

	c.conn = conn
	c.connected = true

	go c.readPump()
	go c.pingPump()

	return nil
}

// delivers user updates until the connection ends
func (c *Client) Updates() <-chan *presenter.ActingUser {
	return c.updates
}

// returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connected
}

// closes the webSocket connection
func (c *Client) Close() {
	c.stopOnce.Do(func() { close(c.stop) })

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.WriteControl(websocket.CloseMessage, //nolint:errcheck,gosec // best-effort close frame
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		c.conn.Close() //nolint:errcheck,gosec // close on shutdown
	}
	c.connected = false
}

// continuously reads frames and forwards user updates
func (c *Client) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.conn.Close() //nolint:errcheck,gosec // read side finished
		c.mu.Unlock()

		c.closeOnce.Do(func() {
			close(c.done)
			close(c.updates)
		})
	}()

	for {
		var msg wsMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("user stream closed", "error", err)
			}
			return
		}

		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // reset on activity

		switch msg.Type {
		case typeUserUpdated:
			var user presenter.ActingUser
			if err := json.Unmarshal(msg.Payload, &user); err != nil {
				logger.Warn("malformed user update", "error", err)
				continue
			}

			select {
			case c.updates <- &user:
			case <-c.stop:
				return
			}

		case typeServerShutdown:
			logger.Info("user stream server shutting down")
			return

		default:
			continue
		}
	}
}

// sends periodic pings to keep the connection alive
func (c *Client) pingPump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return

		case <-ticker.C:
			c.mu.Lock()
			if !c.connected || c.conn == nil {
				c.mu.Unlock()
				return
			}

			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.mu.Unlock()

			if err != nil {
				return
			}
		}
	}
}
