package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mt5ops/internal/domain"
)

// streamReadTimeout bounds how long the read pump waits for a tick before
// giving up on the connection.
const streamReadTimeout = 60 * time.Second

// QuoteStream delivers live ticks for a set of symbols over the bridge's
// WebSocket endpoint. It is single-shot: once the connection drops the
// stream ends, consistent with the no-retry policy of the scripts.
type QuoteStream struct {
	conn   *websocket.Conn
	quotes chan domain.Quote

	mu  sync.Mutex
	err error

	done chan struct{}
}

type subscribeMsg struct {
	Op      string   `json:"op"`
	Symbols []string `json:"symbols"`
}

// OpenQuoteStream dials the bridge stream endpoint derived from the HTTP
// base URL (http -> ws), subscribes to the given symbols, and starts the
// read pump. The stream ends when ctx is cancelled, the server closes, or a
// read fails; the terminal error is then available from Err.
func OpenQuoteStream(ctx context.Context, baseURL string, symbols []string) (*QuoteStream, error) {
	wsURL, err := streamURL(baseURL)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("terminal: dial quote stream: %w", err)
	}

	if err := conn.WriteJSON(subscribeMsg{Op: "subscribe", Symbols: symbols}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("terminal: subscribe: %w", err)
	}

	s := &QuoteStream{
		conn:   conn,
		quotes: make(chan domain.Quote, 64),
		done:   make(chan struct{}),
	}
	go s.readPump(ctx)
	return s, nil
}

// Quotes returns the tick channel. It is closed when the stream ends.
func (s *QuoteStream) Quotes() <-chan domain.Quote { return s.quotes }

// Err returns the error that ended the stream, or nil after a clean close.
func (s *QuoteStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears the connection down and waits for the read pump to exit.
func (s *QuoteStream) Close() error {
	err := s.conn.Close()
	<-s.done
	return err
}

func (s *QuoteStream) readPump(ctx context.Context) {
	defer close(s.done)
	defer close(s.quotes)

	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(streamReadTimeout)); err != nil {
			s.fail(ctx, err)
			return
		}
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			s.fail(ctx, err)
			return
		}

		var q domain.Quote
		if err := json.Unmarshal(msg, &q); err != nil {
			// Non-tick frames (heartbeats, subscribe acks) are skipped.
			continue
		}
		if q.Symbol == "" {
			continue
		}

		select {
		case s.quotes <- q:
		case <-ctx.Done():
			return
		}
	}
}

// fail records why the stream ended. Cancellation and normal closure are not
// errors.
func (s *QuoteStream) fail(ctx context.Context, err error) {
	if ctx.Err() != nil || errors.Is(err, net.ErrClosed) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// streamURL converts the bridge HTTP base URL into its /stream WebSocket URL.
func streamURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("terminal: bad bridge URL %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// already a websocket URL
	default:
		return "", fmt.Errorf("terminal: bad bridge URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/stream"
	return u.String(), nil
}
