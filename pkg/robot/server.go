package robot

import (
	"fmt"
	"net"
	"sync"

	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/protocol"
)

// Server accepts operator connections and runs one Session per client.
// There is no cap on concurrent sessions; each one decodes and
// acknowledges independently.
type Server struct {
	addr       string
	dispatcher *protocol.Dispatcher
	onLine     func()
	logger     customlog.Logger

	ln      net.Listener
	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewServer creates a robot command server.
func NewServer(addr string, dispatcher *protocol.Dispatcher, onLine func(), logger customlog.Logger) *Server {
	return &Server{
		addr:       addr,
		dispatcher: dispatcher,
		onLine:     onLine,
		logger:     logger,
	}
}

// Addr returns the bound listen address; valid after Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Start binds the listener and launches the accept loop. A bind
// failure is returned to the caller; it is the one robot-side error
// worth aborting startup for.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.addr, err)
	}
	s.ln = ln
	s.running = true
	s.logger.Infof("Robot TCP listening on %s", ln.Addr())

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			s.mu.Lock()
			running := s.running
			s.mu.Unlock()
			if !running {
				return
			}
			s.logger.Errorf("Accept error: %v", err)
			continue
		}

		session := NewSession(conn, s.dispatcher, s.onLine, s.logger)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			session.Run()
		}()
	}
}

// Stop closes the listener. Sessions already running finish on their
// own when their clients disconnect.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.ln.Close()
	s.mu.Unlock()
}
