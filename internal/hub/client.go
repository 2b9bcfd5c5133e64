package hub

import (
	"net/http"
	"sync"
	"time"

	"linkup/backend/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one user's live connection. The send channel decouples the hub
// from the network: the hub only ever does non-blocking sends into it, the
// write pump drains it onto the websocket.
type Client struct {
	UserID uint

	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

// NewClient builds an unattached client. Tests use this directly; ServeWS
// attaches a websocket connection.
func NewClient(userID uint) *Client {
	return &Client{
		UserID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

// Send exposes the outbound channel for tests.
func (c *Client) Send() <-chan []byte {
	return c.send
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// trySend queues data without blocking. A full buffer means the client is
// slow or gone; the event is dropped and the read pump's disconnect path
// cleans the client up.
func (c *Client) trySend(data []byte) {
	defer func() {
		// Losing the race with closeSend is fine, the client is going away.
		recover()
	}()
	select {
	case c.send <- data:
	default:
	}
}

// ServeWS upgrades the request to a websocket, registers the client with the
// hub and starts its pumps. Blocks handler goroutine on the read pump.
func ServeWS(h *Hub, userID uint, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(userID)
	client.conn = conn
	h.Register(client)

	go client.writePump()
	client.readPump(h)
	return nil
}

// readPump consumes inbound frames. The channel is push-only: clients send
// nothing but control frames, so reads only serve to detect disconnects.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Uint("userID", c.UserID).Msg("Websocket closed unexpectedly")
			}
			return
		}
	}
}

// writePump drains the send channel onto the connection and keeps it alive
// with pings. Exits when the send channel is closed by the hub.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
