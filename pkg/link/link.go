// Package link provides the byte-stream transport capability between
// the driver station and the robot, the mutex-guarded slot that owns
// the single live transport, and the supervisor that keeps it alive.
package link

import "errors"

// Common errors
var (
	ErrNotConnected = errors.New("link: not connected")
)

// ReadResult classifies the outcome of one non-blocking read attempt.
type ReadResult int

const (
	// ReadMessage means bytes arrived; the link is alive.
	ReadMessage ReadResult = iota
	// ReadWouldBlock means no data is available; the link is alive.
	ReadWouldBlock
	// ReadDisconnected means the remote side closed gracefully.
	ReadDisconnected
)

// Link is an active byte-stream transport. Implementations perform
// best-effort sends and single non-blocking read attempts; any I/O
// failure is fatal to the Link and the caller must discard it.
type Link interface {
	// Send attempts a full write of data. Any failure, including a
	// partial write, means the Link is dead.
	Send(data []byte) error

	// TryRead performs exactly one non-blocking read attempt. On
	// ReadMessage the returned slice holds the raw chunk; it is only
	// valid until the next call. A non-nil error means the Link is dead.
	TryRead() (ReadResult, []byte, error)

	// Endpoint identifies the remote side (address or device path).
	Endpoint() string

	Close() error
}
