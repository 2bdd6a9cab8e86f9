// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpc

import (
	"fmt"
	"strconv"
	"time"

	"github.com/embedio/httpc/logging"
	"github.com/embedio/httpc/mempool"
	"github.com/embedio/httpc/transport"
)

// Supported request methods.
const (
	MethodGet    = "GET"
	MethodPut    = "PUT"
	MethodPost   = "POST"
	MethodDelete = "DELETE"
	MethodHead   = "HEAD"
	MethodPatch  = "PATCH"
)

const (
	// DefaultTimeout bounds transport reads and writes unless SetTimeout
	// overrides it.
	DefaultTimeout = 5 * time.Second

	// HeaderReadBufferSize is the max length of a status or header line.
	// Longer lines are silently truncated by the line reader.
	HeaderReadBufferSize = 2048
)

// Client is a minimal read-oriented HTTP/1.1 client over a Transport.
//
// A Client drives one exchange at a time: Do (or a method wrapper) sends
// the request and parses the status line and headers, after which the body
// read primitives return payload bytes with chunked framing stripped. The
// caller owns the connection lifetime and must Close it once the body has
// been consumed or abandoned.
type Client struct {
	tr      transport.Transport
	s       stream
	info    *ConnInfo
	timeout time.Duration
}

// NewClient creates a Client on the given transport.
func NewClient(tr transport.Transport) *Client {
	c := &Client{
		tr:      tr,
		s:       stream{tr: tr},
		timeout: DefaultTimeout,
	}
	tr.SetTimeout(c.timeout)
	return c
}

// SetTimeout bounds every transport read and write of later exchanges.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
	c.tr.SetTimeout(timeout)
}

// Info returns the framing state of the current exchange, nil before the
// first request.
func (c *Client) Info() *ConnInfo {
	return c.info
}

// Close closes the underlying connection if it is open.
func (c *Client) Close() {
	if c.tr.Connected() {
		_ = c.tr.Close()
	}
}

// Do connects to host:port, sends a request and parses the response
// status line and headers.
//
// headers are raw lines ("Name: value") written after the Host header;
// when outHeaders is non-nil every raw response header line is appended to
// it. The returned ConnInfo is valid until the next request; a nil result
// means the request never made it out (connect or send failure), and in
// the send case the connection has already been closed.
//
// A response whose status line could not be parsed yields StatusCode 0.
func (c *Client) Do(method, host string, port uint16, path string, headers []string, outHeaders *[]string) (*ConnInfo, error) {
	logging.Debug("httpc: connecting to %v:%v", host, port)

	if err := c.tr.Connect(host, port); err != nil {
		logging.Error("httpc: connection to %v:%v failed: %v", host, port, err)
		return nil, fmt.Errorf("connect %v:%v: %w", host, port, err)
	}

	logging.Debug("httpc: sending request: %v %v", method, path)

	buf := mempool.Malloc(0)
	buf = mempool.AppendString(buf, method+" "+path+" HTTP/1.1\r\n")
	buf = mempool.AppendString(buf, "Host: "+host+":"+strconv.Itoa(int(port))+"\r\n")
	for _, h := range headers {
		if h != "" {
			buf = mempool.AppendString(buf, h+"\r\n")
		}
	}
	buf = mempool.AppendString(buf, "\r\n")
	_, err := c.tr.Write(buf)
	mempool.Free(buf)
	if err != nil {
		logging.Error("httpc: failed to send request to %v:%v: %v", host, port, err)
		c.Close()
		return nil, fmt.Errorf("send request: %w", err)
	}

	c.info = &ConnInfo{}
	return c.readStatus(outHeaders)
}

// Get sends a GET request, see Do.
func (c *Client) Get(host string, port uint16, path string, headers []string, outHeaders *[]string) (*ConnInfo, error) {
	return c.Do(MethodGet, host, port, path, headers, outHeaders)
}

// Put sends a PUT request, see Do.
func (c *Client) Put(host string, port uint16, path string, headers []string, outHeaders *[]string) (*ConnInfo, error) {
	return c.Do(MethodPut, host, port, path, headers, outHeaders)
}

// Post sends a POST request, see Do.
func (c *Client) Post(host string, port uint16, path string, headers []string, outHeaders *[]string) (*ConnInfo, error) {
	return c.Do(MethodPost, host, port, path, headers, outHeaders)
}

// Delete sends a DELETE request, see Do.
func (c *Client) Delete(host string, port uint16, path string, headers []string, outHeaders *[]string) (*ConnInfo, error) {
	return c.Do(MethodDelete, host, port, path, headers, outHeaders)
}

// Head sends a HEAD request, see Do.
func (c *Client) Head(host string, port uint16, path string, headers []string, outHeaders *[]string) (*ConnInfo, error) {
	return c.Do(MethodHead, host, port, path, headers, outHeaders)
}

// Patch sends a PATCH request, see Do.
func (c *Client) Patch(host string, port uint16, path string, headers []string, outHeaders *[]string) (*ConnInfo, error) {
	return c.Do(MethodPatch, host, port, path, headers, outHeaders)
}
