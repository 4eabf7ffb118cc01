package headers

import (
	"github.com/shapestone/zc-http1/httperr"
	"github.com/shapestone/zc-http1/vecscan"
)

// tokenizeLine splits a single, contiguous header line — including its
// terminating CRLF — into a name and an OWS-trimmed value, per §4.3:
//
//   - the last two bytes must be CR then LF;
//   - name is the longest prefix of token characters before the first ':';
//     a zero-length name, or any non-token byte (including SP/HTAB/CR)
//     before the ':', rejects;
//   - value is everything after the ':', OWS-trimmed on both ends; a CR
//     anywhere inside it (other than the terminating CRLF already
//     stripped off) rejects.
//
// Obsolete line folding is not supported: a line beginning with SP or HTAB
// has no token characters before its ':' (or no ':' at all) and so always
// rejects via the name-scanning rule above.
func tokenizeLine(line []byte, showDetails bool) (name, value []byte, err error) {
	n := len(line)
	if n < 2 || line[n-2] != '\r' || line[n-1] != '\n' {
		return nil, nil, httperr.New(httperr.InvalidRequestHeader, 0, showDetails, line)
	}
	body := line[:n-2]

	colon := -1
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b == ':' {
			colon = i
			break
		}
		if !isTokenChar(b) {
			return nil, nil, httperr.New(httperr.InvalidRequestHeader, i, showDetails, line)
		}
	}
	if colon <= 0 {
		return nil, nil, httperr.New(httperr.InvalidRequestHeader, 0, showDetails, line)
	}

	name = body[:colon]
	rest := body[colon+1:]
	if i := vecscan.IndexByte(rest, '\r'); i >= 0 {
		return nil, nil, httperr.New(httperr.InvalidRequestHeader, colon+1+i, showDetails, line)
	}

	return name, trimOWS(rest), nil
}
