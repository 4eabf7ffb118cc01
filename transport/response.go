package transport

import (
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

const crlf = "\r\n"

var respBufPool bytebufferpool.Pool

// renderResponse serialises resp into a wire-format HTTP/1.1 response,
// filling in Date, Content-Length, Server, and Connection headers the
// handler didn't already set.
func renderResponse(resp Response, closeAfter bool, serverHeader string) []byte {
	status := resp.Status
	if status == 0 {
		status = 200
	}

	buf := respBufPool.Get()
	defer respBufPool.Put(buf)
	buf.Reset()

	buf.WriteString("HTTP/1.1 ")
	buf.WriteString(strconv.Itoa(status))
	buf.WriteByte(' ')
	buf.WriteString(statusText(status))
	buf.WriteString(crlf)

	hasContentLength, hasServer, hasConnection, hasDate := false, false, false, false
	for _, h := range resp.Headers {
		switch strings.ToLower(h[0]) {
		case "content-length":
			hasContentLength = true
		case "server":
			hasServer = true
		case "connection":
			hasConnection = true
		case "date":
			hasDate = true
		}
		writeHeaderLine(buf, h[0], h[1])
	}
	if !hasContentLength {
		writeHeaderLine(buf, "Content-Length", strconv.Itoa(len(resp.Body)))
	}
	if !hasServer && serverHeader != "" {
		writeHeaderLine(buf, "Server", serverHeader)
	}
	if !hasDate {
		writeHeaderLine(buf, "Date", time.Now().UTC().Format(time.RFC1123))
	}
	if !hasConnection && closeAfter {
		writeHeaderLine(buf, "Connection", "close")
	}

	buf.WriteString(crlf)
	buf.Write(resp.Body)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func writeHeaderLine(buf *bytebufferpool.ByteBuffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString(crlf)
}
