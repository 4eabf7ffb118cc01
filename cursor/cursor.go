// Package cursor implements the segmented input view the parser consumes:
// a read-only, ordered sequence of byte segments with a position that can
// be peeked, advanced, and searched without copying unless a token straddles
// a segment boundary.
package cursor

import "github.com/shapestone/zc-http1/vecscan"

// Cursor is a read-only view over one or more byte segments. It never
// mutates the segments it was given.
type Cursor struct {
	segs   [][]byte
	segIdx int
	segOff int
	pos    int
	total  int
}

// New returns a Cursor over the given segments, in order. Empty segments
// are permitted and skipped transparently.
func New(segments ...[]byte) *Cursor {
	c := &Cursor{segs: segments}
	for _, s := range segments {
		c.total += len(s)
	}
	c.skipEmpty()
	return c
}

// Reset repositions the cursor at the start of a (possibly new) segment
// list, reusing the Cursor's storage.
func (c *Cursor) Reset(segments ...[]byte) {
	c.segs = segments
	c.segIdx = 0
	c.segOff = 0
	c.pos = 0
	c.total = 0
	for _, s := range segments {
		c.total += len(s)
	}
	c.skipEmpty()
}

// Pos reports the number of bytes already advanced past.
func (c *Cursor) Pos() int { return c.pos }

// Remaining reports the number of unconsumed bytes across all segments.
func (c *Cursor) Remaining() int { return c.total - c.pos }

// skipEmpty advances past any fully-consumed or zero-length segments so
// that segIdx/segOff always point at an unconsumed byte, or past the end.
func (c *Cursor) skipEmpty() {
	for c.segIdx < len(c.segs) && c.segOff >= len(c.segs[c.segIdx]) {
		c.segIdx++
		c.segOff = 0
	}
}

// PeekByte returns the next unconsumed byte without advancing. ok is false
// if the view is exhausted.
func (c *Cursor) PeekByte() (b byte, ok bool) {
	c.skipEmpty()
	if c.segIdx >= len(c.segs) {
		return 0, false
	}
	return c.segs[c.segIdx][c.segOff], true
}

// PeekTwo returns the next two unconsumed bytes without advancing. ok is
// false if fewer than two bytes remain in the view.
//
// The common case — both bytes living in the current segment — is kept
// small and inlinable; the cross-segment case is split into a dedicated,
// deliberately non-inlined helper so it doesn't bloat the hot path.
func (c *Cursor) PeekTwo() (b0, b1 byte, ok bool) {
	c.skipEmpty()
	if c.segIdx >= len(c.segs) {
		return 0, 0, false
	}
	seg := c.segs[c.segIdx]
	if c.segOff+1 < len(seg) {
		return seg[c.segOff], seg[c.segOff+1], true
	}
	return c.peekTwoSlow()
}

//go:noinline
func (c *Cursor) peekTwoSlow() (b0, b1 byte, ok bool) {
	idx, off := c.segIdx, c.segOff
	have := 0
	for idx < len(c.segs) {
		seg := c.segs[idx]
		if off >= len(seg) {
			idx++
			off = 0
			continue
		}
		if have == 0 {
			b0 = seg[off]
			have = 1
		} else {
			b1 = seg[off]
			return b0, b1, true
		}
		off++
	}
	return 0, 0, false
}

// Advance consumes n bytes from the current position. n must not exceed
// Remaining().
func (c *Cursor) Advance(n int) {
	for n > 0 {
		c.skipEmpty()
		if c.segIdx >= len(c.segs) {
			return
		}
		seg := c.segs[c.segIdx]
		avail := len(seg) - c.segOff
		if n < avail {
			c.segOff += n
			c.pos += n
			return
		}
		c.pos += avail
		n -= avail
		c.segIdx++
		c.segOff = 0
	}
}

// IndexByte returns the offset of the first occurrence of delim at or after
// the current position, relative to the current position, or -1 if delim
// does not occur anywhere in the remaining view. It does not advance.
func (c *Cursor) IndexByte(delim byte) int {
	c.skipEmpty()
	rel := 0
	idx, off := c.segIdx, c.segOff
	for idx < len(c.segs) {
		seg := c.segs[idx][off:]
		if i := vecscan.IndexByte(seg, delim); i >= 0 {
			return rel + i
		}
		rel += len(seg)
		idx++
		off = 0
	}
	return -1
}

// Slice materialises the next n bytes starting at the current position,
// without advancing. If the range lies entirely within one segment, the
// returned slice aliases that segment (zero-copy); otherwise it is a
// freshly allocated copy. n must not exceed Remaining().
func (c *Cursor) Slice(n int) []byte {
	if n == 0 {
		return nil
	}
	c.skipEmpty()
	if c.segIdx >= len(c.segs) {
		return nil
	}
	seg := c.segs[c.segIdx][c.segOff:]
	if len(seg) >= n {
		return seg[:n:n]
	}

	buf := make([]byte, n)
	filled := copy(buf, seg)
	idx := c.segIdx + 1
	for filled < n && idx < len(c.segs) {
		k := copy(buf[filled:], c.segs[idx])
		filled += k
		idx++
	}
	return buf[:filled]
}

// ReadUntilByte returns the view from the current position up to
// (excluding) the first occurrence of delim, and advances past delim. ok is
// false, and the cursor is left unchanged, if delim does not occur in the
// remaining view.
func (c *Cursor) ReadUntilByte(delim byte) (view []byte, ok bool) {
	i := c.IndexByte(delim)
	if i < 0 {
		return nil, false
	}
	view = c.Slice(i)
	c.Advance(i + 1)
	return view, true
}

// ReadUntilSequence returns the view from the current position up to
// (excluding) the first occurrence of delim, and advances past delim. ok is
// false, and the cursor is left unchanged, if delim does not occur in the
// remaining view.
//
// The match uses a rolling compare that resets to zero on mismatch rather
// than a full KMP automaton; this is not a correct general substring
// matcher for delimiters that self-overlap (e.g. "aa"), but it is exact for
// short, non-self-overlapping delimiters such as CRLF, which is the only
// delimiter this package is ever asked to find.
func (c *Cursor) ReadUntilSequence(delim []byte) (view []byte, ok bool) {
	if len(delim) == 0 {
		return nil, true
	}
	c.skipEmpty()
	matched := 0
	rel := 0
	idx, off := c.segIdx, c.segOff
	for idx < len(c.segs) {
		seg := c.segs[idx]
		if off >= len(seg) {
			idx++
			off = 0
			continue
		}
		b := seg[off]
		off++
		rel++
		if b == delim[matched] {
			matched++
			if matched == len(delim) {
				total := rel
				view = c.Slice(total - len(delim))
				c.Advance(total)
				return view, true
			}
			continue
		}
		// Mismatch: the rolling window resets. Since delim is assumed
		// non-self-overlapping, re-testing against delim[0] here is
		// sufficient (it is what makes this not a general KMP matcher).
		if matched > 0 {
			matched = 0
			if b == delim[0] {
				matched = 1
			}
		}
	}
	return nil, false
}
