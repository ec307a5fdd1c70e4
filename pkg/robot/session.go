package robot

import (
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/google/uuid"

	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/protocol"
)

const (
	sessionReadPause   = 10 * time.Millisecond
	sessionReadBufSize = 512
)

// Session handles one accepted client connection: it frames the inbound
// byte stream into protocol lines, dispatches each and acknowledges it.
// Malformed input never ends a session; only I/O errors do.
type Session struct {
	id         string
	conn       net.Conn
	dispatcher *protocol.Dispatcher
	logger     customlog.Logger

	// onLine fires for every framed inbound line; feeds the watchdog.
	onLine func()
}

// NewSession wraps an accepted connection.
func NewSession(conn net.Conn, dispatcher *protocol.Dispatcher, onLine func(), logger customlog.Logger) *Session {
	id := uuid.NewString()[:8]
	return &Session{
		id:         id,
		conn:       conn,
		dispatcher: dispatcher,
		onLine:     onLine,
		logger:     logger.WithField("session", id),
	}
}

// Run processes the connection until the client disconnects or a hard
// I/O error occurs. It blocks; the server runs it on its own goroutine.
func (s *Session) Run() {
	defer s.conn.Close()

	s.logger.Infof("New client connected: %s", s.conn.RemoteAddr())

	var decoder protocol.LineDecoder
	buf := make([]byte, sessionReadBufSize)

	for {
		// A short deadline keeps the read from parking forever; hitting
		// it is the would-block case, paced by the deadline itself.
		if err := s.conn.SetReadDeadline(time.Now().Add(sessionReadPause)); err != nil {
			s.logger.Errorf("Set read deadline failed: %v", err)
			return
		}

		n, err := s.conn.Read(buf)
		if n > 0 {
			for _, line := range decoder.Feed(buf[:n]) {
				if s.onLine != nil {
					s.onLine()
				}
				if dispErr := s.dispatcher.Dispatch(line); dispErr != nil {
					// Recoverable: bad payloads and unknown commands are
					// reported, the session carries on.
					s.logger.Warnf("Command error: %v", dispErr)
				}
				// One ACK per framed line, dispatched or not.
				if _, ackErr := s.conn.Write([]byte(protocol.Ack)); ackErr != nil {
					s.logger.Infof("Client disconnected while writing ACK")
					return
				}
			}
		}
		if err != nil {
			if isDeadline(err) {
				continue
			}
			if errors.Is(err, io.EOF) {
				s.logger.Infof("Client disconnected")
			} else {
				s.logger.Errorf("Read error: %v", err)
			}
			return
		}
	}
}

func isDeadline(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
