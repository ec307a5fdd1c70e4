package link

import "sync"

// Slot owns the single live Link shared by the supervisor, the command
// encoder, and the telemetry reader. Every access happens under the
// slot's lock for the duration of the transport call; all transport
// operations are non-blocking, so hold times stay bounded.
//
// A dead Link never escapes: Send and TryRead close and drop the Link
// themselves on any fatal outcome.
type Slot struct {
	mu   sync.Mutex
	link Link
}

// Replace installs a freshly connected Link, closing any previous one.
func (s *Slot) Replace(l Link) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.link != nil {
		s.link.Close()
	}
	s.link = l
}

// Clear closes and drops the current Link, if any.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Slot) clearLocked() {
	if s.link != nil {
		s.link.Close()
		s.link = nil
	}
}

// Present reports whether a Link is currently installed.
func (s *Slot) Present() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link != nil
}

// Endpoint returns the current Link's endpoint, or "" when empty.
func (s *Slot) Endpoint() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.link == nil {
		return ""
	}
	return s.link.Endpoint()
}

// Send writes data through the current Link. It returns ErrNotConnected
// when the slot is empty; any transport failure clears the slot and is
// returned so the caller can fire its disconnect notification.
func (s *Slot) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.link == nil {
		return ErrNotConnected
	}
	if err := s.link.Send(data); err != nil {
		s.clearLocked()
		return err
	}
	return nil
}

// TryRead performs one non-blocking read through the current Link. It
// returns ErrNotConnected when the slot is empty. ReadDisconnected and
// transport errors clear the slot before returning.
func (s *Slot) TryRead() (ReadResult, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.link == nil {
		return ReadDisconnected, nil, ErrNotConnected
	}

	res, data, err := s.link.TryRead()
	if err != nil || res == ReadDisconnected {
		s.clearLocked()
	}
	return res, data, err
}
