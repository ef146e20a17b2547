package cache

import (
	"bytes"
	"testing"
)

func TestPutGet(t *testing.T) {
	c := New(4)
	c.Put("a", []byte("one"))
	got, ok := c.Get("a")
	if !ok || !bytes.Equal(got, []byte("one")) {
		t.Fatalf("Get(a) = %q, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}
}

func TestOverwriteKeepsSingleEntry(t *testing.T) {
	c := New(2)
	c.Put("k", []byte("v1"))
	c.Put("k", []byte("v2"))
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	got, _ := c.Get("k")
	if string(got) != "v2" {
		t.Errorf("Get(k) = %q, want v2", got)
	}
}

func TestEvictsOldestFirst(t *testing.T) {
	c := New(2)
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Put("c", []byte("3"))
	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry a survived eviction")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("entry b evicted too early")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("newest entry c missing")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestMinimumCapacity(t *testing.T) {
	c := New(0)
	c.Put("a", nil)
	c.Put("b", nil)
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
