// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpc

import (
	"strconv"
	"strings"

	"github.com/embedio/httpc/logging"
)

// readStatus reads the response status line and extracts the status code.
//
// Empty lines before the real status line are discarded; some servers emit
// them even though the standard says otherwise. A status line the code
// cannot be scanned from leaves StatusCode at 0.
func (c *Client) readStatus(outHeaders *[]string) (*ConnInfo, error) {
	var status string
	for c.tr.Connected() {
		line, err := c.s.readLine('\r', HeaderReadBufferSize)
		if err != nil {
			break
		}
		c.s.discardByte() // '\n'
		if status = strings.TrimSpace(line); status != "" {
			break
		}
	}

	logging.Debug("httpc: response status: %v", status)

	// "<version> <code> <reason>". Anything else leaves the code at 0.
	if fields := strings.Fields(status); len(fields) >= 2 {
		if code, err := strconv.ParseUint(fields[1], 10, 16); err == nil {
			c.info.StatusCode = uint16(code)
		}
	}

	return c.readHeaders(outHeaders)
}

// readHeaders consumes header lines up to the blank line ending the block
// and classifies the body framing.
//
// Matching is case-insensitive. The first Transfer-Encoding header wins;
// once the encoding is set no later header changes it. Content-Length only
// applies while the encoding is still EncodingNone. An unrecognized
// transfer encoding token is treated as absent.
func (c *Client) readHeaders(outHeaders *[]string) (*ConnInfo, error) {
	ci := c.info

	for c.tr.Connected() {
		line, err := c.s.readLine('\r', HeaderReadBufferSize)
		if err != nil {
			break
		}
		c.s.discardByte() // '\n'
		if len(line) == 0 {
			break
		}

		if outHeaders != nil {
			*outHeaders = append(*outHeaders, line)
		}

		logging.Debug("httpc: header --- %v", line)

		if ci.Encoding != EncodingNone {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "transfer-encoding") {
			switch {
			case strings.HasSuffix(lower, "chunked"):
				ci.Encoding = EncodingChunked
			case strings.HasSuffix(lower, "compress"):
				ci.Encoding = EncodingCompress
			case strings.HasSuffix(lower, "deflate"):
				ci.Encoding = EncodingDeflate
			case strings.HasSuffix(lower, "gzip"):
				ci.Encoding = EncodingGZip
			}
			if ci.Encoding == EncodingChunked {
				// Chunked framing supersedes any Content-Length seen before it.
				ci.Remaining = 0
			}
			if ci.Encoding != EncodingNone {
				logging.Debug("httpc: body has %v transfer encoding", ci.Encoding)
			}
		} else if strings.HasPrefix(lower, "content-length") {
			if k := strings.IndexByte(line, ' '); k >= 0 {
				if n, err := strconv.Atoi(strings.TrimSpace(line[k+1:])); err == nil && n >= 0 {
					ci.Remaining = n
					logging.Debug("httpc: content length is %v bytes", n)
				}
			}
		}
	}

	logging.Debug("httpc: finished parsing headers")
	return ci, nil
}
