package headers

import (
	"github.com/shapestone/zc-http1/cursor"
	"github.com/shapestone/zc-http1/httperr"
)

// Parser parses a header block. The zero value is ready to use with
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

// Parse reads header lines starting at c's current position, invoking
// h.OnHeader once per header in source order, until it consumes the empty
// line (bare CRLF) that terminates the block.
//
//   - On success, the cursor is advanced past the terminating CRLF and
//     ok=true with consumed equal to the total number of bytes advanced
//     across the whole call, including every header line and the
//     terminator.
//   - If the view does not yet contain enough bytes to resolve the next
//     line one way or the other, Parse returns (false, 0, nil) and leaves
//     the cursor untouched; the caller should re-invoke Parse once more
//     bytes are available.
//   - If a line is grammatically invalid, Parse returns (false, 0, err)
//     with err a *httperr.ParseError. The cursor position is left
//     unspecified; the caller should not attempt to resume.
func (p *Parser) Parse(c *cursor.Cursor, h Handler) (ok bool, consumed int, err error) {
	start := *c
	total := 0
	for {
		b0, b1, have := c.PeekTwo()
		if !have {
			*c = start
			return false, 0, nil
		}
		if b0 == '\r' {
			if b1 != '\n' {
				return false, 0, p.reject(httperr.InvalidRequestHeadersNoCRLF, total, nil)
			}
			c.Advance(2)
			return true, total + 2, nil
		}

		lf := c.IndexByte('\n')
		if lf < 0 {
			*c = start
			return false, 0, nil
		}

		line := c.Slice(lf + 1) // includes the trailing '\n'
		name, value, terr := tokenizeLine(line, p.ShowErrorDetails)
		if terr != nil {
			if pe, isPE := terr.(*httperr.ParseError); isPE {
				pe.Pos += total
			}
			return false, 0, terr
		}
		if herr := h.OnHeader(name, value); herr != nil {
			return false, 0, herr
		}

		c.Advance(lf + 1)
		total += lf + 1
	}
}

func (p *Parser) reject(reason httperr.Reason, pos int, detail []byte) error {
	return httperr.New(reason, pos, p.ShowErrorDetails, detail)
}
