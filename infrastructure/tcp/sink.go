// Package tcp implements the newline-delimited TCP transport: the listener,
// one session per accepted connection, and the per-connection line sink.
package tcp

import (
	"bufio"
	"net"
	"sync"

	"github.com/AJYORK88/ConnectSphere-Online/contract"
)

var _ contract.Sink = (*LineSink)(nil)

// LineSink writes protocol lines to one connection through a buffered
// writer. Delivery is synchronous and flushed per line; the mutex keeps
// lines whole when the router and a session prompt write concurrently.
type LineSink struct {
	mu        sync.Mutex
	conn      net.Conn
	w         *bufio.Writer
	closeOnce sync.Once
	closeErr  error
}

func NewLineSink(conn net.Conn) *LineSink {
	return &LineSink{conn: conn, w: bufio.NewWriter(conn)}
}

func (s *LineSink) Deliver(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

// Close shuts the underlying connection exactly once; later calls return
// the first result.
func (s *LineSink) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func (s *LineSink) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}
