// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"
	"net"
	"time"
)

// TCPTransport implements Transport over a TCP socket.
type TCPTransport struct {
	conn    net.Conn
	timeout time.Duration
}

// NewTCP creates an unconnected TCPTransport.
func NewTCP() *TCPTransport {
	return &TCPTransport{}
}

// Connect dials host:port. Nagle's algorithm is disabled to keep small
// request writes from being delayed.
func (t *TCPTransport) Connect(host string, port uint16) error {
	if t.conn != nil {
		// Reconnecting: drop the previous socket first.
		_ = t.Close()
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.DialTimeout("tcp", addr, t.timeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.SetNoDelay(true); err != nil {
			conn.Close()
			return fmt.Errorf("set nodelay: %w", err)
		}
	}
	t.conn = conn
	return nil
}

// Connected implements Transport.
func (t *TCPTransport) Connected() bool {
	return t.conn != nil
}

// Read implements Transport.
func (t *TCPTransport) Read(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, ErrNotConnected
	}
	if t.timeout > 0 {
		_ = t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	}
	return t.conn.Read(buf)
}

// Write implements Transport.
func (t *TCPTransport) Write(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, ErrNotConnected
	}
	if t.timeout > 0 {
		_ = t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	}
	return t.conn.Write(buf)
}

// SetTimeout implements Transport. The timeout also bounds Connect.
func (t *TCPTransport) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// Close implements Transport.
func (t *TCPTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
