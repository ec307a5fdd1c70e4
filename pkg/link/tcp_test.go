package link

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// acceptOne returns a listener and a channel delivering the first
// accepted connection.
func acceptOne(t *testing.T) (net.Listener, <-chan net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	conns := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conns <- conn
		}
	}()
	return ln, conns
}

func TestDialTCPRefused(t *testing.T) {
	// Grab a free port, then close the listener so nothing accepts.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = DialTCP(addr)
	assert.Error(t, err)
}

func TestTCPLinkWouldBlock(t *testing.T) {
	ln, _ := acceptOne(t)

	lnk, err := DialTCP(ln.Addr().String())
	require.NoError(t, err)
	defer lnk.Close()

	res, _, err := lnk.TryRead()
	require.NoError(t, err)
	assert.Equal(t, ReadWouldBlock, res)
}

func TestTCPLinkMessageAndDisconnect(t *testing.T) {
	ln, conns := acceptOne(t)

	lnk, err := DialTCP(ln.Addr().String())
	require.NoError(t, err)
	defer lnk.Close()

	remote := <-conns
	_, err = remote.Write([]byte("ACK\n"))
	require.NoError(t, err)

	// Poll until the bytes arrive.
	var res ReadResult
	var data []byte
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		res, data, err = lnk.TryRead()
		require.NoError(t, err)
		if res == ReadMessage {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, ReadMessage, res)
	assert.Equal(t, "ACK\n", string(data))

	// Graceful remote close surfaces as ReadDisconnected.
	remote.Close()
	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		res, _, err = lnk.TryRead()
		require.NoError(t, err)
		if res == ReadDisconnected {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, ReadDisconnected, res)
}

func TestTCPLinkSend(t *testing.T) {
	ln, conns := acceptOne(t)

	lnk, err := DialTCP(ln.Addr().String())
	require.NoError(t, err)
	defer lnk.Close()

	require.NoError(t, lnk.Send([]byte("PING\n")))

	remote := <-conns
	remote.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 16)
	n, err := remote.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "PING\n", string(buf[:n]))
}

func TestTCPLinkEndpoint(t *testing.T) {
	ln, _ := acceptOne(t)

	lnk, err := DialTCP(ln.Addr().String())
	require.NoError(t, err)
	defer lnk.Close()

	assert.Equal(t, ln.Addr().String(), lnk.Endpoint())
}
