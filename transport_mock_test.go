package httpc

import (
	"bytes"
	"errors"
	"io"
	"time"
)

// memTransport replays canned wire bytes and records what the client
// writes. maxRead caps how many bytes a single Read hands out, to mimic a
// transport that trickles data.
type memTransport struct {
	in         *bytes.Reader
	out        bytes.Buffer
	connected  bool
	connects   int
	connectErr error
	writeErr   error
	maxRead    int
}

func newMemTransport(wire string) *memTransport {
	return &memTransport{in: bytes.NewReader([]byte(wire))}
}

func (m *memTransport) Connect(host string, port uint16) error {
	if m.connectErr != nil {
		return m.connectErr
	}
	m.connects++
	m.connected = true
	return nil
}

func (m *memTransport) Connected() bool {
	return m.connected
}

func (m *memTransport) Read(buf []byte) (int, error) {
	if !m.connected {
		return 0, errors.New("mem: not connected")
	}
	if m.maxRead > 0 && len(buf) > m.maxRead {
		buf = buf[:m.maxRead]
	}
	n, err := m.in.Read(buf)
	if err == io.EOF {
		m.connected = false
	}
	return n, err
}

func (m *memTransport) Write(buf []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	return m.out.Write(buf)
}

func (m *memTransport) SetTimeout(timeout time.Duration) {}

func (m *memTransport) Close() error {
	m.connected = false
	return nil
}

// pending reports how many wire bytes the client has not consumed.
func (m *memTransport) pending() int {
	return m.in.Len()
}

var (
	errRefused    = errors.New("mem: connection refused")
	errBrokenPipe = errors.New("mem: broken pipe")
)
