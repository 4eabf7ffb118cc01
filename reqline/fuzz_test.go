package reqline

import (
	"testing"

	"github.com/shapestone/zc-http1/cursor"
)

// FuzzParse exercises the request-line parser with arbitrary input. The
// invariant is: never panic, and never report ok=true with an inconsistent
// consumed count, regardless of input.
func FuzzParse(f *testing.F) {
	f.Add([]byte("GET / HTTP/1.1\r\n"))
	f.Add([]byte("POST /a?b=1%20 HTTP/1.0\r\n"))
	f.Add([]byte("OPTIONS * HTTP/1.1\r\n"))
	f.Add([]byte(""))
	f.Add([]byte("GET"))
	f.Add([]byte("GET / HTTP/1.1"))
	f.Add([]byte("GET %2F HTTP/1.1\r\n"))
	f.Add([]byte("GET / HTTP/9.9\r\n"))
	f.Add([]byte("\r\n"))
	f.Add([]byte("GET / HTTP/1.1\r\nHost: x\r\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Parse panicked on input %q: %v", data, r)
			}
		}()

		c := cursor.New(data)
		p := New(true)
		ok, n, err := p.Parse(c, HandlerFunc(func(StartLine) error { return nil }))
		if ok && (n < 0 || n > len(data)) {
			t.Errorf("Parse returned ok=true with consumed=%d for input of length %d", n, len(data))
		}
		if ok && err != nil {
			t.Errorf("Parse returned ok=true and a non-nil error: %v", err)
		}
		if !ok && n != 0 {
			t.Errorf("Parse returned ok=false with nonzero consumed=%d", n)
		}
	})
}

// FuzzParseSegmented re-runs the same corpus split across single-byte
// segments to catch cross-segment-only bugs.
func FuzzParseSegmented(f *testing.F) {
	f.Add([]byte("GET / HTTP/1.1\r\n"))
	f.Add([]byte("POST /a?b=1%20 HTTP/1.0\r\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Parse panicked on segmented input %q: %v", data, r)
			}
		}()

		segs := make([][]byte, len(data))
		for i := range data {
			segs[i] = data[i : i+1]
		}
		c := cursor.New(segs...)
		p := New(false)
		_, _, _ = p.Parse(c, HandlerFunc(func(StartLine) error { return nil }))
	})
}
