package link

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

const (
	serialReadTimeout = 100 * time.Millisecond
	serialReadBufSize = 512
)

// SerialLink is a Link over a point-to-point serial port. The port's
// read timeout substitutes for a non-blocking socket: a timed-out read
// reports ReadWouldBlock with identical semantics to the TCP variant.
type SerialLink struct {
	port   serial.Port
	device string
	buf    [serialReadBufSize]byte
}

// Ensure SerialLink implements the Link interface
var _ Link = (*SerialLink)(nil)

// OpenSerial opens a serial Link on the given device at the given baud rate.
func OpenSerial(device string, baud int) (*SerialLink, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}
	if err := port.SetReadTimeout(serialReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("serial: set read timeout: %w", err)
	}
	return &SerialLink{port: port, device: device}, nil
}

// Send implements Link.
func (l *SerialLink) Send(data []byte) error {
	if _, err := l.port.Write(data); err != nil {
		return fmt.Errorf("serial: send: %w", err)
	}
	return nil
}

// TryRead implements Link. With the read timeout set, a zero-byte read
// with no error means the timeout elapsed, not a closed port.
func (l *SerialLink) TryRead() (ReadResult, []byte, error) {
	n, err := l.port.Read(l.buf[:])
	if err != nil {
		return ReadDisconnected, nil, fmt.Errorf("serial: read: %w", err)
	}
	if n == 0 {
		return ReadWouldBlock, nil, nil
	}
	return ReadMessage, l.buf[:n], nil
}

// Endpoint implements Link.
func (l *SerialLink) Endpoint() string {
	return l.device
}

// Close implements Link.
func (l *SerialLink) Close() error {
	return l.port.Close()
}
