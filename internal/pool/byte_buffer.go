// Package pool provides pooled byte buffers with amortized growth, used
// by the bit-level writers to avoid per-write allocations.
package pool

import "sync"

// Smallest capacity handed out by the pool, and the largest buffer the
// pool will take back. Oversized buffers are dropped so one huge write
// does not pin memory for the lifetime of the pool.
const (
	defaultBufferSize = 512
	maxPooledSize     = 1 << 20
)

// ByteBuffer is an append-only byte buffer with explicit growth control.
// The zero value is ready to use.
type ByteBuffer struct {
	buf []byte
}

// Bytes returns the accumulated bytes. The slice aliases the internal
// buffer and is valid until the next mutation.
func (b *ByteBuffer) Bytes() []byte { return b.buf }

// Len returns the number of accumulated bytes.
func (b *ByteBuffer) Len() int { return len(b.buf) }

// Cap returns the current capacity.
func (b *ByteBuffer) Cap() int { return cap(b.buf) }

// Reset truncates the buffer, retaining capacity.
func (b *ByteBuffer) Reset() { b.buf = b.buf[:0] }

// Grow ensures capacity for at least n additional bytes, reallocating
// with doubling growth when needed.
func (b *ByteBuffer) Grow(n int) {
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return
	}

	newCap := cap(b.buf) * 2
	if newCap < need {
		newCap = need
	}
	if newCap < defaultBufferSize {
		newCap = defaultBufferSize
	}

	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
}

// AppendByte appends a single byte.
func (b *ByteBuffer) AppendByte(c byte) {
	b.buf = append(b.buf, c)
}

// Append appends p.
func (b *ByteBuffer) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// Extend grows the length by n and returns the newly exposed tail for
// in-place writes.
func (b *ByteBuffer) Extend(n int) []byte {
	b.Grow(n)
	start := len(b.buf)
	b.buf = b.buf[:start+n]

	return b.buf[start:]
}

var bufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{buf: make([]byte, 0, defaultBufferSize)}
	},
}

// GetBuffer retrieves an empty buffer from the pool.
func GetBuffer() *ByteBuffer {
	bb, _ := bufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBuffer returns a buffer to the pool. Buffers that grew beyond
// maxPooledSize are dropped.
func PutBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > maxPooledSize {
		return
	}
	bufferPool.Put(bb)
}
