package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ClientConn is one WebSocket session. Writes go through send and are
// flushed by writePump; only the Hub closes it.
type ClientConn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func newClientConn(id string, ws *websocket.Conn, buffer int) *ClientConn {
	return &ClientConn{
		id:   id,
		ws:   ws,
		send: make(chan []byte, buffer),
	}
}

// enqueue never blocks; false means the client is not keeping up.
func (c *ClientConn) enqueue(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *ClientConn) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

func (c *ClientConn) writePump(pingInterval, writeWait time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
