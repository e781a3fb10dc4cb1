// Package session drives a single headless-browser tab through the
// WebDriver BiDi protocol: connecting to the driver process, locating and
// evaluating against elements, and applying device profiles. It is the
// browser session facade the rest of the auditor is built on.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// bidiCommand is a WebDriver BiDi command envelope.
type bidiCommand struct {
	ID     int64       `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

// bidiResponse is a WebDriver BiDi response envelope.
type bidiResponse struct {
	ID      int64           `json:"id"`
	Type    string          `json:"type"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// bidiClient manages the WebSocket connection to the browser driver process.
type bidiClient struct {
	conn      *websocket.Conn
	url       string
	nextID    atomic.Int64
	pending   map[int64]chan *bidiResponse
	pendingMu sync.Mutex
	closed    atomic.Bool
	closeCh   chan struct{}
}

func newBiDiClient() *bidiClient {
	return &bidiClient{
		pending: make(map[int64]chan *bidiResponse),
		closeCh: make(chan struct{}),
	}
}

// Connect dials the driver process's WebSocket endpoint.
func (c *bidiClient) Connect(ctx context.Context, url string) error {
	dialer := websocket.Dialer{}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return &ConnectionError{URL: url, Cause: err}
	}

	c.conn = conn
	c.url = url

	go c.receiveLoop()

	return nil
}

// Close tears down the WebSocket connection and rejects all pending sends.
func (c *bidiClient) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	close(c.closeCh)

	c.pendingMu.Lock()
	for _, ch := range c.pending {
		close(ch)
	}
	c.pending = make(map[int64]chan *bidiResponse)
	c.pendingMu.Unlock()

	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Send issues a command and blocks for its response, the context deadline,
// or connection closure, whichever comes first.
func (c *bidiClient) Send(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	if c.closed.Load() {
		return nil, ErrConnectionClosed
	}

	id := c.nextID.Add(1)
	cmd := bidiCommand{ID: id, Method: method, Params: params}

	respCh := make(chan *bidiResponse, 1)
	c.pendingMu.Lock()
	c.pending[id] = respCh
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.conn.WriteJSON(cmd); err != nil {
		return nil, fmt.Errorf("send command: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closeCh:
		return nil, ErrConnectionClosed
	case resp, ok := <-respCh:
		if !ok {
			return nil, ErrConnectionClosed
		}
		if resp.Type == "error" || resp.Error != "" {
			return nil, &BiDiError{ErrorType: resp.Error, Message: resp.Message}
		}
		return resp.Result, nil
	}
}

func (c *bidiClient) receiveLoop() {
	for {
		select {
		case <-c.closeCh:
			return
		default:
		}

		var resp bidiResponse
		if err := c.conn.ReadJSON(&resp); err != nil {
			if c.closed.Load() {
				return
			}
			_ = c.Close()
			return
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[resp.ID]
		c.pendingMu.Unlock()

		if ok {
			select {
			case ch <- &resp:
			default:
			}
		}
	}
}
