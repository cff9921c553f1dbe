package model

import (
	"errors"
	"testing"
)

func TestQueue(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := q.AddPlayer(Player{ID: "b"}); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("duplicate: %v", err)
	}

	p1, p2, err := q.GetNextPair()
	if err != nil || p1.ID != "a" || p2.ID != "b" {
		t.Fatalf("GetNextPair = %v %v %v", p1, p2, err)
	}
	if _, _, err := q.GetNextPair(); !errors.Is(err, ErrQueueTooShort) {
		t.Fatalf("short queue: %v", err)
	}
	if !q.Remove("c") || q.Remove("c") || q.Size() != 0 {
		t.Fatal("remove did not drop c exactly once")
	}
}
