package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New[string](time.Minute)

	c.Set("k", "v")

	got, ok := c.Get("k")

	if !ok || got != "v" {
		t.Fatalf("got (%q, %v), want (v, true)", got, ok)
	}
}

func TestMissingKey(t *testing.T) {
	c := New[int](time.Minute)

	_, ok := c.Get("missing")

	if ok {
		t.Fatalf("expected a miss")
	}
}

func TestExpiry(t *testing.T) {
	c := New[string](10 * time.Millisecond)

	c.Set("k", "v")

	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("k")

	if ok {
		t.Fatalf("entry should have expired")
	}
}

func TestClear(t *testing.T) {
	c := New[string](time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")

	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Fatalf("clear did not evict entries")
	}
}
