package link

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

const (
	tcpDialTimeout = 2 * time.Second
	// tryReadDeadline bounds the single read attempt; hitting it is the
	// would-block signal, not an error.
	tryReadDeadline = time.Millisecond
	tcpReadBufSize  = 256
)

// TCPLink is a Link over a TCP connection.
type TCPLink struct {
	conn net.Conn
	addr string
	buf  [tcpReadBufSize]byte
}

// Ensure TCPLink implements the Link interface
var _ Link = (*TCPLink)(nil)

// DialTCP establishes a TCP Link to a single endpoint.
func DialTCP(addr string) (*TCPLink, error) {
	conn, err := net.DialTimeout("tcp", addr, tcpDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("tcp: connect to %s: %w", addr, err)
	}
	return &TCPLink{conn: conn, addr: addr}, nil
}

// Send implements Link.
func (l *TCPLink) Send(data []byte) error {
	if _, err := l.conn.Write(data); err != nil {
		return fmt.Errorf("tcp: send: %w", err)
	}
	return nil
}

// TryRead implements Link. A read deadline in the immediate future
// substitutes for a non-blocking socket; a deadline miss maps to
// ReadWouldBlock and a graceful remote close to ReadDisconnected.
func (l *TCPLink) TryRead() (ReadResult, []byte, error) {
	if err := l.conn.SetReadDeadline(time.Now().Add(tryReadDeadline)); err != nil {
		return ReadDisconnected, nil, fmt.Errorf("tcp: set deadline: %w", err)
	}

	n, err := l.conn.Read(l.buf[:])
	if n > 0 {
		return ReadMessage, l.buf[:n], nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return ReadDisconnected, nil, nil
	}
	if isTimeout(err) {
		return ReadWouldBlock, nil, nil
	}
	return ReadDisconnected, nil, fmt.Errorf("tcp: read: %w", err)
}

// Endpoint implements Link.
func (l *TCPLink) Endpoint() string {
	return l.addr
}

// Close implements Link.
func (l *TCPLink) Close() error {
	return l.conn.Close()
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
