package terminal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"mt5ops/internal/domain"
)

func TestStreamURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"http://127.0.0.1:6280", "ws://127.0.0.1:6280/stream"},
		{"https://bridge.local", "wss://bridge.local/stream"},
		{"ws://127.0.0.1:6280", "ws://127.0.0.1:6280/stream"},
	}
	for _, c := range cases {
		got, err := streamURL(c.in)
		if err != nil {
			t.Errorf("streamURL(%q) error = %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("streamURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := streamURL("ftp://x"); err == nil {
		t.Error("streamURL(ftp://x) should fail")
	}
}

func TestQuoteStreamDeliversTicks(t *testing.T) {
	upgrader := websocket.Upgrader{}
	ticks := []domain.Quote{
		{Symbol: "EURUSD", Bid: 1.10497, Ask: 1.10500, Time: time.Now()},
		{Symbol: "USDJPY", Bid: 154.320, Ask: 154.325, Time: time.Now()},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stream" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var sub subscribeMsg
		if err := conn.ReadJSON(&sub); err != nil {
			t.Errorf("reading subscribe: %v", err)
			return
		}
		if sub.Op != "subscribe" || len(sub.Symbols) != 2 {
			t.Errorf("subscribe = %+v, want op=subscribe with 2 symbols", sub)
		}

		for _, q := range ticks {
			if err := conn.WriteJSON(q); err != nil {
				return
			}
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		conn.WriteMessage(websocket.CloseMessage, msg)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := OpenQuoteStream(ctx, srv.URL, []string{"EURUSD", "USDJPY"})
	if err != nil {
		t.Fatalf("OpenQuoteStream() error = %v", err)
	}

	var got []domain.Quote
	for q := range stream.Quotes() {
		got = append(got, q)
	}

	if len(got) != len(ticks) {
		t.Fatalf("received %d quotes, want %d", len(got), len(ticks))
	}
	for i := range ticks {
		if got[i].Symbol != ticks[i].Symbol || got[i].Bid != ticks[i].Bid {
			t.Errorf("quote[%d] = %+v, want %+v", i, got[i], ticks[i])
		}
	}
	if err := stream.Err(); err != nil {
		t.Errorf("Err() = %v, want nil after clean close", err)
	}
}

func TestQuoteStreamStopsOnCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var sub subscribeMsg
		_ = conn.ReadJSON(&sub)
		// Stay silent until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := OpenQuoteStream(ctx, srv.URL, []string{"EURUSD"})
	if err != nil {
		t.Fatalf("OpenQuoteStream() error = %v", err)
	}

	cancel()

	select {
	case _, open := <-stream.Quotes():
		if open {
			t.Error("expected quote channel to close after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("quote channel did not close after cancel")
	}
	if err := stream.Err(); err != nil {
		t.Errorf("Err() = %v, want nil after cancellation", err)
	}
}
