// Package body implements the two body-framing strategies layered strictly
// above the request-line and header-block parsers: a Content-Length view
// and a chunked-transfer decoder. Neither parser package imports this one;
// body framing is the caller's concern, decided from the headers it
// already collected.
package body

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shapestone/zc-http1/cursor"
	"github.com/shapestone/zc-http1/headers"
	"github.com/shapestone/zc-http1/vecscan"
)

// ContentLength reports whether buf's live region contains a complete
// Content-Length-framed body of n bytes. A true result's body is a
// zero-copy view into buf; a false result means buf does not yet hold n
// bytes and the caller needs to read more and call again, or that n is
// negative. There is no separate error result.
func ContentLength(buf []byte, n int) (body []byte, ok bool) {
	if n < 0 || len(buf) < n {
		return nil, false
	}
	return buf[:n:n], true
}

// Dechunk decodes as much of a Transfer-Encoding: chunked body as is fully
// present in data, following the same stateless-retry contract as the
// line and header parsers: if data does not yet hold a complete body
// (every chunk through the terminating zero-size chunk and its trailer
// section), Dechunk returns (nil, 0, false, nil) and the caller should
// call it again once more bytes have arrived. A malformed chunk — a bad
// hex size, a missing or corrupt chunk terminator, a malformed trailer
// line — is reported immediately as an error and is never mistaken for
// "needs more data".
//
// trailers, if non-nil, is invoked once per trailer header, in source
// order, exactly like headers.Handler during normal header-block parsing.
func Dechunk(data []byte, trailers headers.Handler) (decoded []byte, consumed int, ok bool, err error) {
	pos := 0
	n := len(data)
	var out []byte

	for {
		lineEnd := findLineEnd(data, pos)
		if lineEnd < 0 {
			return nil, 0, false, nil
		}
		sizeLine := data[pos:lineEnd]
		if semi := bytes.IndexByte(sizeLine, ';'); semi >= 0 {
			sizeLine = sizeLine[:semi]
		}
		sizeLine = bytes.TrimSpace(sizeLine)
		if len(sizeLine) == 0 {
			return nil, 0, false, fmt.Errorf("http: chunked encoding: empty chunk size line")
		}

		size, perr := parseHexSize(string(sizeLine))
		if perr != nil {
			return nil, 0, false, fmt.Errorf("http: chunked encoding: invalid chunk size %q: %w", sizeLine, perr)
		}

		termLen, tok, terr := terminatorAt(data, lineEnd)
		if terr != nil {
			return nil, 0, false, terr
		}
		if !tok {
			return nil, 0, false, nil
		}
		dataStart := lineEnd + termLen

		if size == 0 {
			// A bare LF ends an empty trailer section, matching the LF-only
			// line endings findLineEnd and terminatorAt accept.
			if dataStart < n && data[dataStart] == '\n' {
				if out == nil {
					out = []byte{}
				}
				return out, dataStart + 1, true, nil
			}
			trailerConsumed, tok, terr := consumeTrailers(data[dataStart:], trailers)
			if terr != nil {
				return nil, 0, false, terr
			}
			if !tok {
				return nil, 0, false, nil
			}
			if out == nil {
				out = []byte{}
			}
			return out, dataStart + trailerConsumed, true, nil
		}

		if size > n-dataStart {
			return nil, 0, false, nil
		}
		chunkEnd := dataStart + size
		chunkTermLen, tok2, terr2 := terminatorAt(data, chunkEnd)
		if terr2 != nil {
			return nil, 0, false, terr2
		}
		if !tok2 {
			return nil, 0, false, nil
		}
		out = append(out, data[dataStart:chunkEnd]...)
		pos = chunkEnd + chunkTermLen
	}
}

// consumeTrailers parses zero or more trailer header lines followed by the
// terminating empty line, reusing the header-block tokeniser rather than a
// second hand-rolled implementation.
func consumeTrailers(data []byte, trailers headers.Handler) (consumed int, ok bool, err error) {
	c := cursor.New(data)
	p := headers.New(false)
	if trailers == nil {
		trailers = headers.HandlerFunc(func(name, value []byte) error { return nil })
	}
	ok, n, err := p.Parse(c, trailers)
	return n, ok, err
}

// findLineEnd finds the position of the '\r' of a "\r\n" pair, or of a bare
// '\n', starting from pos. It returns -1 if neither occurs yet in data —
// which, for a '\r' at the very end of data with no following byte, is the
// correct "need more data" answer rather than a definite non-match.
//
// It locates the line terminator with a single vecscan.IndexByte pass for
// '\n' rather than a byte-at-a-time loop, consistent with how the rest of
// this tree finds its delimiters (headers.Parser does the same LF search
// through cursor.Cursor.IndexByte).
func findLineEnd(data []byte, pos int) int {
	idx := vecscan.IndexByte(data[pos:], '\n')
	if idx < 0 {
		return -1
	}
	lf := pos + idx
	if lf > pos && data[lf-1] == '\r' {
		return lf - 1
	}
	return lf
}

// terminatorAt reports the length of the line terminator at pos: 1 for a
// bare '\n', 2 for "\r\n". ok is false, with a nil error, if not enough
// bytes are present yet to tell. err is non-nil if the byte at pos can
// never begin a valid terminator (including a lone '\r' not followed by
// '\n').
func terminatorAt(data []byte, pos int) (n int, ok bool, err error) {
	if pos >= len(data) {
		return 0, false, nil
	}
	switch data[pos] {
	case '\n':
		return 1, true, nil
	case '\r':
		if pos+1 >= len(data) {
			return 0, false, nil
		}
		if data[pos+1] == '\n' {
			return 2, true, nil
		}
		return 0, false, fmt.Errorf("http: chunked encoding: expected LF after CR in chunk terminator")
	default:
		return 0, false, fmt.Errorf("http: chunked encoding: expected CRLF after chunk data, got %q", data[pos])
	}
}

// parseHexSize parses a chunk-size hex string into an integer. It leans on
// strconv.ParseUint for the actual digit-by-digit work instead of a
// hand-rolled nibble loop; 63 bits is far beyond any chunk size this
// decoder will ever be asked to hold in memory at once.
func parseHexSize(s string) (int, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("empty hex string")
	}
	v, err := strconv.ParseUint(s, 16, 63)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
