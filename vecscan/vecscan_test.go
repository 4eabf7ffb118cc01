package vecscan

import (
	"bytes"
	"strings"
	"testing"
)

func TestIndexByte(t *testing.T) {
	tests := []struct {
		name string
		b    string
		c    byte
		want int
	}{
		{"empty", "", 'x', -1},
		{"single match", "x", 'x', 0},
		{"single miss", "y", 'x', -1},
		{"short miss", "abcdef", 'z', -1},
		{"short match at end", "abcdez", 'z', 5},
		{"exact word no match", "abcdefgh", 'z', -1},
		{"exact word match first byte", "zbcdefgh", 'z', 0},
		{"exact word match last byte", "abcdefgz", 'z', 7},
		{"match in second word", "abcdefghz", 'z', 8},
		{"match in tail after full words", strings.Repeat("a", 16) + "z", 'z', 16},
		{"all zero byte scan", "\x00\x00\x00\x00\x00\x00\x00\x00z", 'z', 8},
		{"multiple matches returns first", "zzzzzzzzz", 'z', 0},
		{"newline in long line", strings.Repeat("x", 37) + "\n" + strings.Repeat("x", 5), '\n', 37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexByte([]byte(tt.b), tt.c)
			if got != tt.want {
				t.Errorf("IndexByte(%q, %q) = %d, want %d", tt.b, tt.c, got, tt.want)
			}
			// Cross-check against the standard library on every case.
			if want := bytes.IndexByte([]byte(tt.b), tt.c); want != tt.want {
				t.Fatalf("test bug: bytes.IndexByte disagrees with test table: got %d want %d", want, tt.want)
			}
		})
	}
}

func TestIndexByteNeverReadsPastLength(t *testing.T) {
	// Allocate a slice inside a larger backing array and poison the bytes
	// immediately after it; IndexByte must not be influenced by them.
	backing := make([]byte, 64)
	for i := 10; i < len(backing); i++ {
		backing[i] = 'z'
	}
	b := backing[:10]
	if got := IndexByte(b, 'z'); got != -1 {
		t.Errorf("IndexByte must not see bytes beyond len(b): got %d, want -1", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains([]byte("hello"), 'l') {
		t.Error("Contains(\"hello\", 'l') = false, want true")
	}
	if Contains([]byte("hello"), 'z') {
		t.Error("Contains(\"hello\", 'z') = true, want false")
	}
	if Contains(nil, 'x') {
		t.Error("Contains(nil, 'x') = true, want false")
	}
}

func TestIndexByteAgainstStdlibRandomish(t *testing.T) {
	// Deterministic pseudo-random-looking corpus, no math/rand dependency.
	var buf []byte
	for i := 0; i < 500; i++ {
		buf = append(buf, byte(i*7+3))
	}
	for _, c := range []byte{0, 1, 7, 13, 200, 255} {
		got := IndexByte(buf, c)
		want := bytes.IndexByte(buf, c)
		if got != want {
			t.Errorf("IndexByte(buf, %d) = %d, want %d", c, got, want)
		}
	}
}

func BenchmarkIndexByteShort(b *testing.B) {
	data := []byte("Host: example.com\r\n")
	for i := 0; i < b.N; i++ {
		IndexByte(data, '\n')
	}
}

func BenchmarkIndexByteLong(b *testing.B) {
	data := bytes.Repeat([]byte("x"), 4096)
	data[4095] = '\n'
	for i := 0; i < b.N; i++ {
		IndexByte(data, '\n')
	}
}
