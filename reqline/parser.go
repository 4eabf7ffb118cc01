// Package reqline implements the request-line parser: "METHOD SP target SP
// HTTP/x.y CRLF". It is one half of the zero-copy, segment-resumable
// HTTP/1.x parser; see package headers for the other half.
package reqline

import (
	"github.com/shapestone/zc-http1/cursor"
	"github.com/shapestone/zc-http1/httperr"
)

var methodTable = map[string]Method{
	"GET":     MethodGET,
	"PUT":     MethodPUT,
	"POST":    MethodPOST,
	"HEAD":    MethodHEAD,
	"TRACE":   MethodTRACE,
	"PATCH":   MethodPATCH,
	"DELETE":  MethodDELETE,
	"CONNECT": MethodCONNECT,
	"OPTIONS": MethodOPTIONS,
}

const (
	versionLen = len("HTTP/1.1")
	http10     = "HTTP/1.0"
	http11     = "HTTP/1.1"
)

// Parser parses request lines. The zero value is ready to use with
// ShowErrorDetails left at its default of false.
type Parser struct {
	// ShowErrorDetails selects whether a returned *httperr.ParseError
	// carries an escaped-ASCII excerpt of the offending line.
	ShowErrorDetails bool
}

// New returns a Parser configured with the given error-detail policy.
func New(showErrorDetails bool) *Parser {
	return &Parser{ShowErrorDetails: showErrorDetails}
}

// Parse attempts to parse one request line starting at c's current
// position.
//
//   - On success, h.OnStartLine is invoked exactly once, the cursor is
//     advanced past the line (including its CRLF), and ok=true with
//     consumed equal to the number of bytes advanced.
//   - If the view does not yet contain a full line (no LF found), Parse
//     returns (false, 0, nil) and leaves the cursor untouched; the caller
//     should re-invoke Parse once more bytes are available.
//   - If the line is grammatically invalid, Parse returns (false, 0, err)
//     with err a *httperr.ParseError. The cursor position is left
//     unspecified; the caller should not attempt to resume and should
//     close the connection (or, for httperr.UnrecognizedHTTPVersion,
//     may choose to respond 505 instead).
func (p *Parser) Parse(c *cursor.Cursor, h Handler) (ok bool, consumed int, err error) {
	lf := c.IndexByte('\n')
	if lf < 0 {
		return false, 0, nil
	}

	line := c.Slice(lf + 1) // includes the trailing '\n'
	sl, err := p.parseLine(line)
	if err != nil {
		return false, 0, err
	}

	if err := h.OnStartLine(sl); err != nil {
		return false, 0, err
	}

	c.Advance(lf + 1)
	return true, lf + 1, nil
}

func (p *Parser) reject(reason httperr.Reason, pos int, line []byte) error {
	return httperr.New(reason, pos, p.ShowErrorDetails, line)
}

// parseLine parses a single line (including its trailing CRLF) into a
// StartLine. line is never retained beyond the call: the returned
// StartLine's byte-slice fields alias it, which is fine since Parse's
// caller invokes the handler before the cursor (and therefore the
// materialised line) moves on.
func (p *Parser) parseLine(line []byte) (StartLine, error) {
	var sl StartLine
	n := len(line)

	// --- method ---
	sp := -1
	for i := 0; i < n; i++ {
		b := line[i]
		if b == ' ' {
			sp = i
			break
		}
		if !isTokenChar(b) {
			return sl, p.reject(httperr.InvalidRequestLine, i, line)
		}
	}
	if sp <= 0 {
		return sl, p.reject(httperr.InvalidRequestLine, 0, line)
	}
	methodBytes := line[:sp]
	if m, known := methodTable[string(methodBytes)]; known {
		sl.Method = m
	} else {
		sl.Method = MethodCustom
		sl.CustomMethod = methodBytes
	}
	pos := sp + 1

	// --- target (path + optional "?query") ---
	if pos >= n || line[pos] == ' ' {
		return sl, p.reject(httperr.InvalidRequestLine, pos, line)
	}
	if line[pos] == '%' {
		return sl, p.reject(httperr.InvalidRequestLine, pos, line)
	}

	targetStart := pos
	queryOff := -1
	pathEncoded := false
	i := pos
	for i < n {
		b := line[i]
		if b == ' ' {
			break
		}
		if b == '\r' {
			return sl, p.reject(httperr.InvalidRequestLine, i, line)
		}
		if b == '?' && queryOff < 0 {
			queryOff = i
		}
		if b == '%' {
			pathEncoded = true
		}
		i++
	}
	if i >= n {
		return sl, p.reject(httperr.InvalidRequestLine, i, line)
	}
	targetEnd := i

	pathEnd := targetEnd
	if queryOff >= 0 {
		pathEnd = queryOff
	}
	if pathEnd == targetStart {
		return sl, p.reject(httperr.InvalidRequestLine, targetStart, line)
	}

	sl.Target = line[targetStart:targetEnd]
	sl.Path = line[targetStart:pathEnd]
	sl.PathEncoded = pathEncoded
	if queryOff >= 0 {
		sl.Query = line[queryOff+1 : targetEnd]
	} else {
		sl.Query = line[targetEnd:targetEnd]
	}
	pos = targetEnd + 1 // consume the SP terminating the target

	// --- version ---
	if pos+versionLen+2 > n {
		return sl, p.reject(httperr.InvalidRequestLine, pos, line)
	}
	versionBytes := line[pos : pos+versionLen]
	switch string(versionBytes) {
	case http10:
		sl.Version = HTTP10
	case http11:
		sl.Version = HTTP11
	default:
		crOK := line[pos+versionLen] == '\r' && line[pos+versionLen+1] == '\n'
		if crOK && pos+versionLen+2 == n {
			return sl, p.reject(httperr.UnrecognizedHTTPVersion, pos, line)
		}
		return sl, p.reject(httperr.InvalidRequestLine, pos, line)
	}

	if line[pos+versionLen] != '\r' {
		return sl, p.reject(httperr.InvalidRequestLine, pos+versionLen, line)
	}
	if line[pos+versionLen+1] != '\n' {
		return sl, p.reject(httperr.InvalidRequestLine, pos+versionLen+1, line)
	}
	if pos+versionLen+2 != n {
		return sl, p.reject(httperr.InvalidRequestLine, pos+versionLen+2, line)
	}

	return sl, nil
}
