// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpc

import (
	"io"
	"strconv"

	"github.com/embedio/httpc/logging"
	"github.com/embedio/httpc/mempool"
)

// chunkSizeDigits caps the hex digits of a chunk-size line.
const chunkSizeDigits = 8

// ReadByte reads one body payload byte, transparently consuming chunk-size
// lines and chunk terminators. It returns io.EOF once the body is over,
// and keeps returning io.EOF on every later call.
func (c *Client) ReadByte() (byte, error) {
	ci := c.info
	if ci == nil {
		return 0, ErrNoExchange
	}
	if ci.done {
		return 0, io.EOF
	}

	if ci.Remaining == 0 {
		if ci.Encoding != EncodingChunked {
			// Fixed length exhausted; the stream is not touched again.
			ci.done = true
			return 0, io.EOF
		}
		size, err := c.readChunkSize()
		if err != nil {
			return 0, err
		}
		if size == 0 {
			return 0, c.finishChunked()
		}
		ci.Remaining = size
	}

	b, err := c.s.readByte()
	if err != nil {
		return 0, err
	}
	ci.Remaining--
	return b, nil
}

// Read fills p with body payload bytes, crossing chunk boundaries as
// needed. It only returns fewer than len(p) bytes at the end of the body,
// never mid-stream, and returns (0, io.EOF) once the body is exhausted.
func (c *Client) Read(p []byte) (int, error) {
	ci := c.info
	if ci == nil {
		return 0, ErrNoExchange
	}
	if ci.done {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	// Fast path: the request fits inside the current chunk or the fixed
	// length unit.
	if len(p) <= ci.Remaining {
		n, err := c.s.readFull(p)
		ci.Remaining -= n
		return n, err
	}

	// A chunk boundary (or the end of the body) is crossed at least once.
	want := len(p)
	left := want
	for left > 0 {
		readSize := left
		if ci.Remaining < readSize {
			readSize = ci.Remaining
		}
		if readSize > 0 {
			n, err := c.s.readFull(p[want-left : want-left+readSize])
			left -= n
			ci.Remaining -= n
			if err != nil {
				return want - left, err
			}
		}

		if ci.Remaining == 0 {
			if ci.Encoding != EncodingChunked {
				// The declared content length is used up; there is nothing
				// more to read no matter what the connection does next.
				ci.done = true
				break
			}
			size, err := c.readChunkSize()
			if err != nil {
				return want - left, err
			}
			if size == 0 {
				if err := c.finishChunked(); err != io.EOF {
					return want - left, err
				}
				break
			}
			ci.Remaining = size
		}
	}

	n := want - left
	if n == 0 && ci.done {
		return 0, io.EOF
	}
	return n, nil
}

// finishChunked consumes the CRLF after the terminal chunk and latches the
// end-of-body state. It always reports io.EOF.
func (c *Client) finishChunked() error {
	logging.Debug("httpc: read: EOF")
	if err := c.s.discardCRLF(); err != nil {
		return err
	}
	c.info.done = true
	return io.EOF
}

// readChunkSize reads a chunk-size line: hex digits terminated by CRLF.
//
// Leftover '\r' or '\n' bytes from the previous chunk's terminator are
// skipped before the first digit, so the caller does not have to track
// whether that terminator was already consumed.
func (c *Client) readChunkSize() (int, error) {
	var b byte
	var err error
	for {
		b, err = c.s.readByte()
		if err != nil {
			return 0, err
		}
		if b != '\r' && b != '\n' {
			break
		}
	}

	// Collect the leading hex digits; everything after the first non-hex
	// byte (chunk extensions, stray spaces) is consumed up to the CR and
	// ignored.
	digits := mempool.Malloc(0)
	defer mempool.Free(digits)
	collecting := isHexDigit(b)
	if collecting {
		digits = mempool.Append(digits, b)
	}
	for {
		b, err = c.s.readByte()
		if err != nil {
			return 0, err
		}
		if b == '\r' {
			break
		}
		if collecting && isHexDigit(b) && len(digits) < chunkSizeDigits {
			digits = mempool.Append(digits, b)
		} else {
			collecting = false
		}
	}
	c.s.discardByte() // '\n'

	if len(digits) == 0 {
		return 0, ErrInvalidChunkSize
	}
	size, err := strconv.ParseUint(string(digits), 16, 63)
	if err != nil || size > uint64(^uint(0)>>1) {
		return 0, ErrInvalidChunkSize
	}
	return int(size), nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
