// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpc

// TransferEncoding is the body framing announced by the response headers.
//
// Compress, Deflate and GZip are detected but not decoded: the body read
// primitives hand the raw compressed bytes through unchanged.
type TransferEncoding uint8

const (
	// EncodingNone means a fixed Content-Length body (or no body at all).
	EncodingNone TransferEncoding = iota
	// EncodingChunked .
	EncodingChunked
	// EncodingCompress .
	EncodingCompress
	// EncodingDeflate .
	EncodingDeflate
	// EncodingGZip .
	EncodingGZip
)

var encodingNames = [...]string{
	EncodingNone:     "none",
	EncodingChunked:  "chunked",
	EncodingCompress: "compress",
	EncodingDeflate:  "deflate",
	EncodingGZip:     "gzip",
}

func (e TransferEncoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "unknown"
}

// ConnInfo is the framing state of one request/response exchange. It is
// owned by the Client for the duration of the exchange and is not safe for
// concurrent use.
type ConnInfo struct {
	// StatusCode is 0 until the status line is parsed; it stays 0 when the
	// status line could not be parsed.
	StatusCode uint16

	// Encoding is set once by the header parser and never changes
	// afterwards.
	Encoding TransferEncoding

	// Remaining is the number of fixed-length body bytes left when
	// Encoding is EncodingNone, or the bytes left in the current chunk
	// when Encoding is EncodingChunked (0 between chunks).
	Remaining int

	// done is latched by the terminal event: a zero-size chunk, or the
	// declared content length running out. Reads return io.EOF forever
	// after that.
	done bool
}
