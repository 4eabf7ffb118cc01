package buffer

import (
	"bytes"
	"testing"
)

func TestAppendAndBytes(t *testing.T) {
	b := Acquire()
	defer Release(b)

	b.Append([]byte("hello "))
	b.Append([]byte("world"))
	if got := b.Bytes(); !bytes.Equal(got, []byte("hello world")) {
		t.Errorf("Bytes() = %q", got)
	}
	if b.Len() != len("hello world") {
		t.Errorf("Len() = %d", b.Len())
	}
}

func TestDiscardPartial(t *testing.T) {
	b := Acquire()
	defer Release(b)

	b.Append([]byte("GET / HTTP/1.1\r\nmore"))
	b.Discard(len("GET / HTTP/1.1\r\n"))
	if got := string(b.Bytes()); got != "more" {
		t.Errorf("Bytes() = %q, want %q", got, "more")
	}
}

func TestDiscardAll(t *testing.T) {
	b := Acquire()
	defer Release(b)

	b.Append([]byte("abc"))
	b.Discard(100)
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestDiscardZeroOrNegativeIsNoop(t *testing.T) {
	b := Acquire()
	defer Release(b)

	b.Append([]byte("abc"))
	b.Discard(0)
	b.Discard(-5)
	if got := string(b.Bytes()); got != "abc" {
		t.Errorf("Bytes() = %q, want abc", got)
	}
}

func TestResetClearsLiveRegion(t *testing.T) {
	b := Acquire()
	defer Release(b)

	b.Append([]byte("abc"))
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestAppendAfterDiscardContinuesFromFront(t *testing.T) {
	b := Acquire()
	defer Release(b)

	b.Append([]byte("XXXXXhello"))
	b.Discard(5)
	b.Append([]byte(" world"))
	if got := string(b.Bytes()); got != "hello world" {
		t.Errorf("Bytes() = %q", got)
	}
}

func TestAcquireReleaseRoundTrip(t *testing.T) {
	b := Acquire()
	b.Append([]byte("stale"))
	Release(b)

	b2 := Acquire()
	defer Release(b2)
	if b2.Len() != 0 {
		t.Errorf("recycled buffer not reset: len=%d", b2.Len())
	}
}
