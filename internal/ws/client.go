package ws

import (
	"encoding/json"
	"sync"
)

// Conn is the part of a websocket connection a Client writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client serializes every write to one connection. The underlying
// connection allows a single writer at a time.
type Client struct {
	conn      Conn
	mu        sync.Mutex
	lastState uint64
}

func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

func (c *Client) SendError(text string) error {
	return c.Send(ErrorMessage(text))
}

// SendState writes a game state tagged with its version. States at or below
// the last version sent are dropped, so the client never moves backwards.
func (c *Client) SendState(version uint64, payload json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if version <= c.lastState {
		return nil
	}
	if err := c.conn.WriteJSON(Message{Type: MessageTypeGameState, Payload: payload}); err != nil {
		return err
	}
	c.lastState = version
	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
