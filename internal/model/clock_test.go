package model

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock(10 * time.Second)
	c.now = func() time.Time { return now }

	if c.IsRunning() || c.GetTimeLeft() != 10*time.Second {
		t.Fatal("new clock should be stopped and full")
	}
	c.Start()
	now = now.Add(3 * time.Second)
	if got := c.GetTimeLeft(); got != 7*time.Second {
		t.Fatalf("running clock: %v left", got)
	}
	c.Start()
	now = now.Add(time.Second)
	c.Stop()
	now = now.Add(time.Hour)
	if got := c.GetTimeLeft(); got != 6*time.Second {
		t.Fatalf("stopped clock: %v left", got)
	}
	if c.tenths() != 60 {
		t.Fatalf("tenths = %d", c.tenths())
	}
}
