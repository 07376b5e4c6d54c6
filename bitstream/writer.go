// Package bitstream provides MSB-first bit-level reading and writing
// over byte slices.
//
// Bits are packed most-significant-bit first: the first bit written
// lands in bit 7 of the first output byte. Writer and Reader agree on
// this layout, so any sequence of writes can be replayed by the same
// sequence of reads.
package bitstream

import "github.com/obseq/obseq/internal/pool"

// Writer packs bits into a growing byte buffer, most significant bit
// first. Create one with NewWriter and return its buffer to the pool
// with Release when the encoded bytes are no longer needed.
type Writer struct {
	buf *pool.ByteBuffer

	// Pending bits, left-aligned: the next bit to emit is bit 63 of acc.
	acc    uint64
	nbits  uint
	total  int // total bits written, including pending
	padded bool
}

// NewWriter returns a Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetBuffer()}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) {
	var v uint64
	if bit {
		v = 1
	}
	w.WriteBits(v, 1)
}

// WriteBits appends the low n bits of value, most significant first.
// n must be in [0, 64]; out-of-range widths are clamped.
func (w *Writer) WriteBits(value uint64, n int) {
	if n <= 0 {
		return
	}
	if n > 64 {
		n = 64
	}
	if n < 64 {
		value &= (1 << uint(n)) - 1
	}
	w.padded = false
	w.total += n

	free := 64 - w.nbits
	if uint(n) <= free {
		w.acc |= value << (free - uint(n))
		w.nbits += uint(n)
		w.flushFullBytes()

		return
	}

	// Split: top `free` bits now, the rest after the accumulator drains.
	rest := uint(n) - free
	w.acc |= value >> rest
	w.nbits = 64
	w.flushFullBytes()

	w.acc |= (value & ((1 << rest) - 1)) << (64 - w.nbits - rest)
	w.nbits += rest
	w.flushFullBytes()
}

// WriteUint64 appends all 64 bits of value.
func (w *Writer) WriteUint64(value uint64) {
	w.WriteBits(value, 64)
}

func (w *Writer) flushFullBytes() {
	for w.nbits >= 8 {
		w.buf.AppendByte(byte(w.acc >> 56))
		w.acc <<= 8
		w.nbits -= 8
	}
}

// BitLen returns the total number of bits written so far.
func (w *Writer) BitLen() int { return w.total }

// Len returns the number of bytes the encoded stream occupies,
// counting a trailing partial byte as one.
func (w *Writer) Len() int {
	return (w.total + 7) / 8
}

// Finish pads the trailing partial byte with zero bits and returns the
// encoded bytes. The slice aliases the writer's buffer and is valid
// until Reset or Release. Finish is idempotent; call Reset before
// writing again.
func (w *Writer) Finish() []byte {
	if w.nbits > 0 && !w.padded {
		w.buf.AppendByte(byte(w.acc >> 56))
		w.acc = 0
		w.nbits = 0
		w.padded = true
	}

	return w.buf.Bytes()
}

// Reset discards all written bits, retaining the buffer.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.acc = 0
	w.nbits = 0
	w.total = 0
	w.padded = false
}

// Release returns the underlying buffer to the pool. The writer must
// not be used afterwards, and slices returned by Finish are invalidated.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutBuffer(w.buf)
		w.buf = nil
	}
}
