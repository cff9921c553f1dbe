package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// recordingConn fails the test if two writes overlap.
type recordingConn struct {
	t       *testing.T
	writing atomic.Int32
	mu      sync.Mutex
	sent    []Message
	fail    bool
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	if r.writing.Add(1) != 1 {
		r.t.Error("concurrent write to connection")
	}
	defer r.writing.Add(-1)
	time.Sleep(time.Millisecond)

	if r.fail {
		return errors.New("broken pipe")
	}
	r.mu.Lock()
	r.sent = append(r.sent, v.(Message))
	r.mu.Unlock()
	return nil
}

func (r *recordingConn) Close() error { return nil }

func TestClientSerializesWrites(t *testing.T) {
	conn := &recordingConn{t: t}
	client := NewClient(conn)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(2)
		go func(v uint64) {
			defer wg.Done()
			client.SendState(v, json.RawMessage(`{}`))
		}(uint64(i))
		go func() {
			defer wg.Done()
			client.SendError("malformed message")
		}()
	}
	wg.Wait()

	if len(conn.sent) < 21 {
		t.Fatalf("expected every error and at least one state, got %d messages", len(conn.sent))
	}
}

func TestClientDropsStaleStates(t *testing.T) {
	conn := &recordingConn{t: t}
	client := NewClient(conn)

	for _, v := range []uint64{2, 1, 2, 3} {
		if err := client.SendState(v, json.RawMessage(fmt.Sprintf(`{"v":%d}`, v))); err != nil {
			t.Fatal(err)
		}
	}
	if len(conn.sent) != 2 {
		t.Fatalf("expected versions 2 and 3 only, got %d messages", len(conn.sent))
	}
	if string(conn.sent[0].Payload) != `{"v":2}` || string(conn.sent[1].Payload) != `{"v":3}` {
		t.Fatalf("unexpected order %s then %s", conn.sent[0].Payload, conn.sent[1].Payload)
	}
}

func TestClientFailedStateCanBeRetried(t *testing.T) {
	conn := &recordingConn{t: t, fail: true}
	client := NewClient(conn)
	if err := client.SendState(1, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected write error")
	}
	conn.fail = false
	if err := client.SendState(1, json.RawMessage(`{}`)); err != nil || len(conn.sent) != 1 {
		t.Fatalf("retry: %v, %d sent", err, len(conn.sent))
	}
}
