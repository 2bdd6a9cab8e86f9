// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/embedio/httpc/logging"
	"github.com/embedio/httpc/mempool"
)

// jsonReadBufferSize is the lookahead window handed to the JSON decoder.
const jsonReadBufferSize = 128

// BodyCallback receives each buffer-load of body bytes. Returning false
// stops the transfer.
type BodyCallback func(data []byte) bool

// ReadBody streams the whole body through buf, invoking cb after every
// read with the bytes just received. It returns the total number of body
// bytes processed; ErrCallbackAbort when cb rejected the transfer.
//
// The loop relies on Read under-filling buf only at the end of the body.
func (c *Client) ReadBody(buf []byte, cb BodyCallback) (int64, error) {
	if c.info == nil {
		return 0, ErrNoExchange
	}

	var total int64
	for {
		n, err := c.Read(buf)
		total += int64(n)
		if err != nil && err != io.EOF {
			return total, err
		}

		logging.Debug("httpc: read %v body bytes", n)

		if !cb(buf[:n]) {
			logging.Debug("httpc: body callback rejected data")
			return total, ErrCallbackAbort
		}
		if n < len(buf) {
			return total, nil
		}
	}
}

// ReadBodyString reads up to max body bytes and returns them as a string.
func (c *Client) ReadBodyString(max int) (string, error) {
	if c.info == nil {
		return "", ErrNoExchange
	}

	buf := mempool.Malloc(max)
	defer mempool.Free(buf)

	total := 0
	for total < max {
		n, err := c.Read(buf[total:max])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return string(buf[:total]), err
		}
		if total < max {
			// Short read: end of body.
			break
		}
	}
	return string(buf[:total]), nil
}

// DecodeJSON decodes the body as JSON into v, reading the framed body
// through a small buffered window. The body bytes are consumed either way;
// a decode failure cannot be retried on the same exchange.
func (c *Client) DecodeJSON(v interface{}) error {
	if c.info == nil {
		return ErrNoExchange
	}

	if err := json.NewDecoder(bufio.NewReaderSize(c, jsonReadBufferSize)).Decode(v); err != nil {
		logging.Error("httpc: error parsing the JSON response: %v", err)
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
