// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"
	"net"
	"time"
)

// UnixTransport implements Transport over a Unix domain socket.
type UnixTransport struct {
	conn    net.Conn
	timeout time.Duration
}

// NewUnix creates an unconnected UnixTransport.
func NewUnix() *UnixTransport {
	return &UnixTransport{}
}

// Connect dials the socket at path host. The port argument is ignored.
func (t *UnixTransport) Connect(host string, port uint16) error {
	if t.conn != nil {
		// Reconnecting: drop the previous socket first.
		_ = t.Close()
	}
	conn, err := net.DialTimeout("unix", host, t.timeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", host, err)
	}
	t.conn = conn
	return nil
}

// Connected implements Transport.
func (t *UnixTransport) Connected() bool {
	return t.conn != nil
}

// Read implements Transport.
func (t *UnixTransport) Read(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, ErrNotConnected
	}
	if t.timeout > 0 {
		_ = t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	}
	return t.conn.Read(buf)
}

// Write implements Transport.
func (t *UnixTransport) Write(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, ErrNotConnected
	}
	if t.timeout > 0 {
		_ = t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	}
	return t.conn.Write(buf)
}

// SetTimeout implements Transport.
func (t *UnixTransport) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// Close implements Transport.
func (t *UnixTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
