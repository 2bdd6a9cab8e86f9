// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package transport

import (
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/iceber/iouring-go"
)

const uringQueueDepth = 32

// URingTransport implements Transport over a raw TCP socket driven by
// io_uring submissions. Timeouts are not applied to queued operations; an
// operation completes when the kernel finishes it or the peer goes away.
type URingTransport struct {
	iour    *iouring.IOURing
	fd      int
	timeout time.Duration
}

// NewURing creates an unconnected URingTransport with its own ring.
func NewURing() (*URingTransport, error) {
	iour, err := iouring.New(uringQueueDepth)
	if err != nil {
		return nil, fmt.Errorf("io_uring init: %w", err)
	}
	return &URingTransport{iour: iour, fd: -1}, nil
}

// Connect resolves host:port and connects a non-blocking socket through
// the ring.
func (t *URingTransport) Connect(host string, port uint16) error {
	if t.fd >= 0 {
		// Reconnecting: drop the previous socket first.
		_ = t.Close()
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", addr, err)
	}

	family := syscall.AF_INET
	var sa syscall.Sockaddr
	if ip4 := tcpAddr.IP.To4(); ip4 != nil {
		sa4 := &syscall.SockaddrInet4{Port: tcpAddr.Port}
		copy(sa4.Addr[:], ip4)
		sa = sa4
	} else {
		family = syscall.AF_INET6
		sa6 := &syscall.SockaddrInet6{Port: tcpAddr.Port}
		copy(sa6.Addr[:], tcpAddr.IP.To16())
		sa = sa6
	}

	fd, err := syscall.Socket(family, syscall.SOCK_STREAM, 0)
	if err != nil {
		return fmt.Errorf("socket: %w", err)
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		syscall.Close(fd)
		return fmt.Errorf("set nonblock: %w", err)
	}
	if err := syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, syscall.TCP_NODELAY, 1); err != nil {
		syscall.Close(fd)
		return fmt.Errorf("set nodelay: %w", err)
	}

	prepReq, err := iouring.Connect(fd, sa)
	if err != nil {
		syscall.Close(fd)
		return fmt.Errorf("prepare connect: %w", err)
	}
	ch := make(chan iouring.Result, 1)
	if _, err := t.iour.SubmitRequest(prepReq, ch); err != nil {
		syscall.Close(fd)
		return fmt.Errorf("submit connect: %w", err)
	}
	result := <-ch
	if _, err := result.ReturnInt(); err != nil {
		syscall.Close(fd)
		return fmt.Errorf("connect %s: %w", addr, err)
	}

	t.fd = fd
	return nil
}

// Connected implements Transport.
func (t *URingTransport) Connected() bool {
	return t.fd >= 0
}

// Read implements Transport.
func (t *URingTransport) Read(buf []byte) (int, error) {
	if t.fd < 0 {
		return 0, ErrNotConnected
	}

	ch := make(chan iouring.Result, 1)
	if _, err := t.iour.SubmitRequest(iouring.Recv(t.fd, buf, 0), ch); err != nil {
		return 0, fmt.Errorf("submit recv: %w", err)
	}
	result := <-ch
	n, err := result.ReturnInt()
	if err != nil {
		return 0, fmt.Errorf("recv: %w", err)
	}
	if n == 0 && len(buf) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements Transport. Short kernel writes are resubmitted until
// the whole buffer is sent.
func (t *URingTransport) Write(buf []byte) (int, error) {
	if t.fd < 0 {
		return 0, ErrNotConnected
	}

	total := 0
	for total < len(buf) {
		ch := make(chan iouring.Result, 1)
		if _, err := t.iour.SubmitRequest(iouring.Send(t.fd, buf[total:], 0), ch); err != nil {
			return total, fmt.Errorf("submit send: %w", err)
		}
		result := <-ch
		n, err := result.ReturnInt()
		if err != nil {
			return total, fmt.Errorf("send: %w", err)
		}
		if n <= 0 {
			return total, io.ErrClosedPipe
		}
		total += n
	}
	return total, nil
}

// SetTimeout implements Transport. Stored for interface parity only, see
// the type comment.
func (t *URingTransport) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// Close closes the socket but keeps the ring for later connections.
func (t *URingTransport) Close() error {
	if t.fd < 0 {
		return nil
	}
	err := syscall.Close(t.fd)
	t.fd = -1
	return err
}

// Destroy closes the socket and tears the ring down.
func (t *URingTransport) Destroy() error {
	err := t.Close()
	if t.iour != nil {
		if cerr := t.iour.Close(); err == nil {
			err = cerr
		}
		t.iour = nil
	}
	return err
}
