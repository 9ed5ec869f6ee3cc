package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendQueueSize = 256
	maxFrameSize  = 8 * 1024
)

// Client is one live connection handle. The handle id, not the identity,
// is what the presence registry compares on disconnect, so a reconnect that
// supersedes this client leaves the newer registration untouched.
type Client struct {
	id       string
	identity string
	conn     *websocket.Conn

	// groups is this client's membership set, guarded by the hub's mutex.
	groups map[string]bool

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection for the given identity.
func NewClient(identity string, conn *websocket.Conn) *Client {
	return &Client{
		id:       uuid.New().String(),
		identity: identity,
		conn:     conn,
		groups:   make(map[string]bool),
		send:     make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
	}
}

// ID returns the unique handle id of this connection.
func (c *Client) ID() string { return c.id }

// Identity returns the authenticated identity behind the connection.
func (c *Client) Identity() string { return c.identity }

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// readPump drains inbound frames until the connection drops. Imperative
// operations arrive over HTTP, so inbound socket traffic is only keepalive.
func (c *Client) readPump() {
	defer c.shutdown()
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump pushes queued events and pings until the client goes away.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
