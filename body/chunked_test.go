package body

import (
	"bytes"
	"testing"
)

func TestDechunkSimple(t *testing.T) {
	raw := []byte("4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")
	decoded, consumed, ok, err := Dechunk(raw, nil)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if consumed != len(raw) {
		t.Errorf("consumed = %d, want %d", consumed, len(raw))
	}
	if string(decoded) != "Wikipedia" {
		t.Errorf("decoded = %q", decoded)
	}
}

func TestDechunkWithExtension(t *testing.T) {
	raw := []byte("5;ext=val\r\nhello\r\n0\r\n\r\n")
	decoded, _, ok, err := Dechunk(raw, nil)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if string(decoded) != "hello" {
		t.Errorf("decoded = %q", decoded)
	}
}

func TestDechunkEmptyBody(t *testing.T) {
	raw := []byte("0\r\n\r\n")
	decoded, consumed, ok, err := Dechunk(raw, nil)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if consumed != len(raw) {
		t.Errorf("consumed = %d, want %d", consumed, len(raw))
	}
	if len(decoded) != 0 {
		t.Errorf("decoded = %q, want empty", decoded)
	}
}

func TestDechunkWithTrailers(t *testing.T) {
	raw := []byte("4\r\nWiki\r\n0\r\nX-Custom: value\r\n\r\n")
	var gotName, gotValue string
	trailers := func(name, value []byte) error {
		gotName, gotValue = string(name), string(value)
		return nil
	}
	decoded, consumed, ok, err := Dechunk(raw, headerHandlerFunc(trailers))
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if consumed != len(raw) {
		t.Errorf("consumed = %d, want %d", consumed, len(raw))
	}
	if string(decoded) != "Wiki" {
		t.Errorf("decoded = %q", decoded)
	}
	if gotName != "X-Custom" || gotValue != "value" {
		t.Errorf("trailer = %q: %q", gotName, gotValue)
	}
}

func TestDechunkIncompleteSizeLine(t *testing.T) {
	_, _, ok, err := Dechunk([]byte("4"), nil)
	if ok || err != nil {
		t.Fatalf("ok=%v err=%v, want (false, nil)", ok, err)
	}
}

func TestDechunkIncompleteChunkData(t *testing.T) {
	_, _, ok, err := Dechunk([]byte("5\r\nWik"), nil)
	if ok || err != nil {
		t.Fatalf("ok=%v err=%v, want (false, nil)", ok, err)
	}
}

func TestDechunkIncompleteChunkTerminator(t *testing.T) {
	_, _, ok, err := Dechunk([]byte("5\r\nhello"), nil)
	if ok || err != nil {
		t.Fatalf("ok=%v err=%v, want (false, nil)", ok, err)
	}
}

func TestDechunkIncompleteTrailers(t *testing.T) {
	_, _, ok, err := Dechunk([]byte("0\r\nX-Custom: v"), nil)
	if ok || err != nil {
		t.Fatalf("ok=%v err=%v, want (false, nil)", ok, err)
	}
}

func TestDechunkInvalidHexSizeErrors(t *testing.T) {
	_, _, ok, err := Dechunk([]byte("g\r\n"), nil)
	if ok || err == nil {
		t.Fatalf("ok=%v err=%v, want error", ok, err)
	}
}

func TestDechunkBadTerminatorErrors(t *testing.T) {
	_, _, ok, err := Dechunk([]byte("5\r\nhelloXX0\r\n\r\n"), nil)
	if ok || err == nil {
		t.Fatalf("ok=%v err=%v, want error", ok, err)
	}
}

func TestDechunkLFOnlyLineEndings(t *testing.T) {
	raw := []byte("5\nhello\n0\n\n")
	decoded, consumed, ok, err := Dechunk(raw, nil)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if consumed != len(raw) {
		t.Errorf("consumed = %d, want %d", consumed, len(raw))
	}
	if string(decoded) != "hello" {
		t.Errorf("decoded = %q", decoded)
	}
}

func TestDechunkMultipleChunks(t *testing.T) {
	raw := []byte("5\r\nhello\r\n6\r\nworld!\r\n0\r\n\r\n")
	decoded, _, ok, err := Dechunk(raw, nil)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(decoded, []byte("helloworld!")) {
		t.Errorf("decoded = %q", decoded)
	}
}

type headerHandlerFunc func(name, value []byte) error

func (f headerHandlerFunc) OnHeader(name, value []byte) error { return f(name, value) }
