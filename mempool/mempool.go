// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mempool

import (
	"sync"
)

// Allocator hands out reusable byte buffers.
type Allocator interface {
	Malloc(size int) []byte
	Realloc(buf []byte, size int) []byte
	Append(buf []byte, more ...byte) []byte
	AppendString(buf []byte, more string) []byte
	Free(buf []byte)
}

// DefaultMemPool is the allocator used by the package-level helpers.
var DefaultMemPool = New(64, 64*1024)

// MemPool is a sync.Pool backed Allocator.
type MemPool struct {
	bufSize  int
	freeSize int
	pool     *sync.Pool
}

// New creates a MemPool. bufSize is the default size of pooled buffers,
// freeSize the max size of a buffer the pool will take back.
func New(bufSize, freeSize int) Allocator {
	if bufSize <= 0 {
		bufSize = 64
	}
	if freeSize <= 0 {
		freeSize = 64 * 1024
	}
	if freeSize < bufSize {
		freeSize = bufSize
	}

	mp := &MemPool{
		bufSize:  bufSize,
		freeSize: freeSize,
		pool:     &sync.Pool{},
	}
	mp.pool.New = func() interface{} {
		buf := make([]byte, bufSize)
		return &buf
	}
	return mp
}

// Malloc returns a buffer of the wanted size.
func (mp *MemPool) Malloc(size int) []byte {
	if size > mp.freeSize {
		return make([]byte, size)
	}
	pbuf := mp.pool.Get().(*[]byte)
	n := cap(*pbuf)
	if n < size {
		*pbuf = append((*pbuf)[:n], make([]byte, size-n)...)
	}
	return (*pbuf)[:size]
}

// Realloc resizes a buffer, reallocating when it outgrows its capacity.
func (mp *MemPool) Realloc(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[:size]
	}
	newBuf := mp.Malloc(size)
	copy(newBuf, buf)
	mp.Free(buf)
	return newBuf
}

// Append appends bytes to a pooled buffer.
func (mp *MemPool) Append(buf []byte, more ...byte) []byte {
	return append(buf, more...)
}

// AppendString appends a string to a pooled buffer.
func (mp *MemPool) AppendString(buf []byte, more string) []byte {
	return append(buf, more...)
}

// Free gives a buffer back to the pool.
func (mp *MemPool) Free(buf []byte) {
	if cap(buf) == 0 || cap(buf) > mp.freeSize {
		return
	}
	buf = buf[:cap(buf)]
	mp.pool.Put(&buf)
}

// Malloc exported default.
func Malloc(size int) []byte {
	return DefaultMemPool.Malloc(size)
}

// Realloc exported default.
func Realloc(buf []byte, size int) []byte {
	return DefaultMemPool.Realloc(buf, size)
}

// Append exported default.
func Append(buf []byte, more ...byte) []byte {
	return DefaultMemPool.Append(buf, more...)
}

// AppendString exported default.
func AppendString(buf []byte, more string) []byte {
	return DefaultMemPool.AppendString(buf, more)
}

// Free exported default.
func Free(buf []byte) {
	DefaultMemPool.Free(buf)
}
