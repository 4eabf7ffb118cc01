// Package buffer implements the pooled, per-connection accumulator that
// sits between the transport and the parser: bytes read off the wire are
// appended here, handed to the parser as a single segment, and discarded
// once the parser reports how many of them it consumed.
package buffer

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

var pool bytebufferpool.Pool

// Buffer owns a growable byte slice representing the unconsumed bytes of a
// single connection. It is not safe for concurrent use; callers own one
// Buffer per connection and never share it across goroutines.
type Buffer struct {
	bb *bytebufferpool.ByteBuffer
}

var bufPool = sync.Pool{
	New: func() any { return &Buffer{} },
}

// Acquire returns a Buffer ready for use, either freshly allocated or
// recycled from a prior Release.
func Acquire() *Buffer {
	b := bufPool.Get().(*Buffer)
	if b.bb == nil {
		b.bb = pool.Get()
	}
	return b
}

// Release returns b to the pool. b must not be used again after this call.
func Release(b *Buffer) {
	b.bb.Reset()
	pool.Put(b.bb)
	b.bb = nil
	bufPool.Put(b)
}

// Append copies p onto the end of the buffer's live region.
func (b *Buffer) Append(p []byte) {
	b.bb.Write(p)
}

// Bytes returns the buffer's live, unconsumed region. The returned slice
// aliases the buffer's storage and is invalidated by the next Append,
// Discard, or Reset.
func (b *Buffer) Bytes() []byte {
	return b.bb.Bytes()
}

// Len reports the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return b.bb.Len()
}

// Discard removes the first n bytes of the live region, shifting whatever
// remains to the front. This mirrors the parser's consumed-byte contract:
// after a successful Parse call, the caller discards exactly the number of
// bytes reported as consumed.
func (b *Buffer) Discard(n int) {
	buf := b.bb.Bytes()
	switch {
	case n <= 0:
		return
	case n >= len(buf):
		b.bb.Reset()
	default:
		copy(buf, buf[n:])
		b.bb.B = buf[:len(buf)-n]
	}
}

// Reset discards the entire live region.
func (b *Buffer) Reset() {
	b.bb.Reset()
}
