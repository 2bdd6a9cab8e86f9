// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpc

import (
	"io"

	"github.com/embedio/httpc/mempool"
	"github.com/embedio/httpc/transport"
)

// stream layers byte and line primitives over a Transport.
//
// It is deliberately unbuffered: header lines are read byte by byte so the
// stream is never consumed past the blank line, and fixed-length bodies
// never consume bytes past the declared length.
type stream struct {
	tr transport.Transport
}

func (s *stream) readByte() (byte, error) {
	var b [1]byte
	n, err := s.tr.Read(b[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return b[0], nil
}

// discardByte drops one byte, typically the '\n' that pairs a '\r'
// delimiter. Errors are ignored; the next read reports them anyway.
func (s *stream) discardByte() {
	_, _ = s.readByte()
}

// discardCRLF drops the two-byte line terminator.
func (s *stream) discardCRLF() error {
	for i := 0; i < 2; i++ {
		if _, err := s.readByte(); err != nil {
			return err
		}
	}
	return nil
}

// readFull reads exactly len(p) bytes unless the stream ends first.
func (s *stream) readFull(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := s.tr.Read(p[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.EOF
		}
	}
	return total, nil
}

// readLine reads through the next delim byte and returns the line without
// it. Bytes beyond max are consumed but silently dropped, so an oversized
// line comes back truncated.
func (s *stream) readLine(delim byte, max int) (string, error) {
	buf := mempool.Malloc(0)
	var err error
	var b byte
	for {
		b, err = s.readByte()
		if err != nil || b == delim {
			break
		}
		if len(buf) < max {
			buf = mempool.Append(buf, b)
		}
	}
	line := string(buf)
	mempool.Free(buf)
	return line, err
}
