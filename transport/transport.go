// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"time"
)

// ErrNotConnected is returned by Read/Write before Connect or after Close.
var ErrNotConnected = errors.New("transport: not connected")

// Transport is a blocking, timeout-bounded byte stream. The HTTP client
// depends only on this interface, never on a concrete implementation.
type Transport interface {
	// Connect establishes a connection to the given host and port.
	// For Unix domain sockets, host is the socket path and port is ignored.
	Connect(host string, port uint16) error

	// Connected reports whether Connect succeeded and Close has not been
	// called yet.
	Connected() bool

	// Read receives up to len(buf) bytes from the peer.
	Read(buf []byte) (int, error)

	// Write sends data to the peer.
	Write(buf []byte) (int, error)

	// SetTimeout bounds every following Read and Write. Zero disables the
	// bound.
	SetTimeout(timeout time.Duration)

	// Close closes the connection. Closing twice is fine.
	Close() error
}
