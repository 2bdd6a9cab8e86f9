// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpc

import (
	"errors"
)

var (
	// ErrNoExchange .
	ErrNoExchange = errors.New("no request/response exchange in progress")

	// ErrCallbackAbort .
	ErrCallbackAbort = errors.New("body callback aborted")

	// ErrInvalidChunkSize .
	ErrInvalidChunkSize = errors.New("invalid chunk size")
)
