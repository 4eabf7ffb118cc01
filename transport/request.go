package transport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shapestone/zc-http1/astview"
	"github.com/shapestone/zc-http1/body"
	"github.com/shapestone/zc-http1/cursor"
	"github.com/shapestone/zc-http1/headers"
	"github.com/shapestone/zc-http1/httperr"
	"github.com/shapestone/zc-http1/reqline"
)

const defaultMaxHeaderBytes = 8 << 10

// readRequest attempts to decode one complete request — request line,
// headers, and (if framed) body — from buf's live region.
//
//   - ok=true: a request was decoded; consumed is the number of bytes to
//     discard from buf before the next call.
//   - ok=false, err=nil: buf does not yet hold a complete request; the
//     caller should wait for more bytes and call again.
//   - err != nil: the request is malformed and the connection must close.
func readRequest(buf []byte, maxHeaderBytes int, showDetails bool) (req astview.Request, consumed int, closeAfter bool, ok bool, err error) {
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = defaultMaxHeaderBytes
	}

	c := cursor.New(buf)
	var col astview.Collector

	lp := reqline.New(showDetails)
	lok, _, lerr := lp.Parse(c, &col)
	if lerr != nil {
		return req, 0, true, false, lerr
	}
	if !lok {
		if len(buf) > maxHeaderBytes {
			return req, 0, true, false, fmt.Errorf("http: request line exceeds %d bytes", maxHeaderBytes)
		}
		return req, 0, false, false, nil
	}

	var contentLength = -1
	var chunked bool
	var hdrErr error
	collectFraming := headers.HandlerFunc(func(name, value []byte) error {
		if e := col.OnHeader(name, value); e != nil {
			return e
		}
		switch {
		case strings.EqualFold(string(name), "Content-Length"):
			n, perr := strconv.Atoi(strings.TrimSpace(string(value)))
			if perr != nil || n < 0 {
				hdrErr = fmt.Errorf("http: invalid Content-Length %q", value)
				return hdrErr
			}
			contentLength = n
		case strings.EqualFold(string(name), "Transfer-Encoding"):
			if strings.EqualFold(strings.TrimSpace(string(value)), "chunked") {
				chunked = true
			}
		}
		return nil
	})

	hok, hn, herr := headers.New(showDetails).Parse(c, collectFraming)
	if herr != nil {
		return req, 0, true, false, herr
	}
	if !hok {
		if c.Pos()+c.Remaining() > maxHeaderBytes {
			return req, 0, true, false, fmt.Errorf("http: headers exceed %d bytes", maxHeaderBytes)
		}
		return req, 0, false, false, nil
	}
	_ = hn

	if chunked && contentLength >= 0 {
		return req, 0, true, false, fmt.Errorf("http: chunked request must not also set Content-Length")
	}

	headerBytesConsumed := c.Pos()
	rest := buf[headerBytesConsumed:]

	switch {
	case chunked:
		decoded, bodyConsumed, bok, berr := body.Dechunk(rest, collectFraming)
		if berr != nil {
			return req, 0, true, false, berr
		}
		if !bok {
			return req, 0, false, false, nil
		}
		col.SetBody(decoded)
		consumed = headerBytesConsumed + bodyConsumed
	case contentLength > 0:
		b, bok := body.ContentLength(rest, contentLength)
		if !bok {
			return req, 0, false, false, nil
		}
		col.SetBody(b)
		consumed = headerBytesConsumed + contentLength
	default:
		consumed = headerBytesConsumed
	}

	req = col.Request()
	closeAfter = shouldClose(req)
	return req, consumed, closeAfter, true, nil
}

func shouldClose(req astview.Request) bool {
	for _, h := range req.Headers {
		if !strings.EqualFold(h.Key, "Connection") {
			continue
		}
		for _, tok := range strings.Split(h.Value, ",") {
			if strings.EqualFold(strings.TrimSpace(tok), "close") {
				return true
			}
		}
	}
	if req.Version == "HTTP/1.0" {
		return !hasConnectionToken(req, "keep-alive")
	}
	return false
}

func hasConnectionToken(req astview.Request, token string) bool {
	for _, h := range req.Headers {
		if !strings.EqualFold(h.Key, "Connection") {
			continue
		}
		for _, tok := range strings.Split(h.Value, ",") {
			if strings.EqualFold(strings.TrimSpace(tok), token) {
				return true
			}
		}
	}
	return false
}

// classify reports the httperr.Reason a rejection carries, if any, so the
// caller can pick an appropriate status code (505 for an unrecognised
// version, 400 otherwise).
func classify(err error) (httperr.Reason, bool) {
	var pe *httperr.ParseError
	if pe2, ok := asParseError(err); ok {
		pe = pe2
	}
	if pe == nil {
		return 0, false
	}
	return pe.Reason, true
}

func asParseError(err error) (*httperr.ParseError, bool) {
	pe, ok := err.(*httperr.ParseError)
	return pe, ok
}
