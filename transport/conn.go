package transport

import (
	"github.com/google/uuid"

	"github.com/shapestone/zc-http1/buffer"
)

// connState is attached to every gnet.Conn via SetContext. It owns the
// connection's accumulated, unconsumed bytes and its short-lived
// diagnostic identifier; both are exclusive to the event-loop goroutine
// that services this connection.
type connState struct {
	buf       *buffer.Buffer
	id        string
	reqCount  int
	keepAlive bool
}

func newConnState() *connState {
	return &connState{
		buf:       buffer.Acquire(),
		id:        uuid.NewString(),
		keepAlive: true,
	}
}

func (cs *connState) release() {
	buffer.Release(cs.buf)
	cs.buf = nil
}
