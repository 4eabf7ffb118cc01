// Package httperr defines the classified rejection taxonomy shared by the
// request-line and header-block parsers.
package httperr

import (
	"fmt"
)

// Reason classifies why a parse was rejected.
type Reason int

const (
	// InvalidRequestLine is a grammar violation in the method, target, or
	// line-terminator region of the request line.
	InvalidRequestLine Reason = iota
	// InvalidRequestHeader is a grammar violation within a single header
	// line.
	InvalidRequestHeader
	// InvalidRequestHeadersNoCRLF is a bare CR not followed by LF in the
	// header region.
	InvalidRequestHeadersNoCRLF
	// UnrecognizedHTTPVersion is a syntactically valid request line whose
	// version token is neither HTTP/1.0 nor HTTP/1.1. Unlike the other
	// reasons, a caller may treat this as recoverable and respond 505.
	UnrecognizedHTTPVersion
)

func (r Reason) String() string {
	switch r {
	case InvalidRequestLine:
		return "InvalidRequestLine"
	case InvalidRequestHeader:
		return "InvalidRequestHeader"
	case InvalidRequestHeadersNoCRLF:
		return "InvalidRequestHeadersNoCRLF"
	case UnrecognizedHTTPVersion:
		return "UnrecognizedHTTPVersion"
	default:
		return "UnknownReason"
	}
}

// MaxExceptionDetailSize bounds the escaped-ASCII excerpt attached to a
// ParseError when ShowErrorDetails is enabled.
const MaxExceptionDetailSize = 128

// ParseError is returned by the request-line and header-block parsers for
// every rejection. Incomplete input is not an error — see the (false, 0)
// returns documented on the parsers — so ParseError is only ever returned
// for grammar violations.
type ParseError struct {
	Reason Reason
	Pos    int    // byte offset of the rejection, relative to the call
	Detail string // escaped-ASCII excerpt, set only when requested
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http: %s at byte %d: %s", e.Reason, e.Pos, e.Detail)
	}
	return fmt.Sprintf("http: %s at byte %d", e.Reason, e.Pos)
}

// Is allows errors.Is(err, httperr.Sentinel(httperr.InvalidRequestLine))
// style comparisons by reason, without requiring callers to unwrap to a
// concrete *ParseError and compare Reason fields themselves.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Reason == other.Reason
}

// New builds a *ParseError. When showDetails is false, detailSrc is ignored
// and Detail is left empty, matching the parser's ShowErrorDetails
// configuration knob.
func New(reason Reason, pos int, showDetails bool, detailSrc []byte) *ParseError {
	e := &ParseError{Reason: reason, Pos: pos}
	if showDetails {
		e.Detail = EscapeASCII(detailSrc, MaxExceptionDetailSize)
	}
	return e
}

// Sentinel returns a zero-position, zero-detail *ParseError for the given
// reason. The Reason constants are not errors themselves; errors.Is
// comparisons go through ParseError.Is, which compares only the Reason
// field, so sentinel values are sufficient targets for errors.Is checks:
//
//	if errors.Is(err, httperr.Sentinel(httperr.InvalidRequestLine)) { ... }
func Sentinel(reason Reason) *ParseError {
	return &ParseError{Reason: reason}
}

// EscapeASCII renders up to max bytes of b as a printable, escaped excerpt
// suitable for embedding in an error message: printable ASCII other than a
// backslash passes through unchanged, a backslash is doubled, and
// everything else becomes a \xNN escape. If b is longer
// than max, the excerpt is truncated and "..." is appended.
func EscapeASCII(b []byte, max int) string {
	truncated := false
	if len(b) > max {
		b = b[:max]
		truncated = true
	}
	out := make([]byte, 0, len(b)+8)
	for _, c := range b {
		switch {
		case c == '\\':
			out = append(out, '\\', '\\')
		case c >= 0x20 && c < 0x7f:
			out = append(out, c)
		default:
			out = append(out, '\\', 'x', hexDigit(c>>4), hexDigit(c&0x0f))
		}
	}
	if truncated {
		out = append(out, '.', '.', '.')
	}
	return string(out)
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}
