package bitstream

// Reader consumes bits from a byte slice, most significant bit first.
// Reads past the end return ok=false and leave the position unchanged,
// so a short stream is detected at the first over-read rather than by
// a panic.
type Reader struct {
	data []byte
	pos  int // bit position of the next read
}

// NewReader returns a Reader over data. The reader does not copy data;
// the caller must not mutate it while reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bit bool, ok bool) {
	v, ok := r.ReadBits(1)

	return v == 1, ok
}

// ReadBits reads the next n bits into the low bits of the returned
// value. n must be in [0, 64]; n == 0 reads nothing and succeeds.
func (r *Reader) ReadBits(n int) (value uint64, ok bool) {
	if n < 0 || n > 64 {
		return 0, false
	}
	if r.pos+n > len(r.data)*8 {
		return 0, false
	}

	for n > 0 {
		byteIdx := r.pos >> 3
		bitOff := uint(r.pos & 7)
		avail := 8 - int(bitOff)

		take := avail
		if take > n {
			take = n
		}

		chunk := uint64(r.data[byteIdx]) >> (uint(avail) - uint(take))
		chunk &= (1 << uint(take)) - 1

		value = value<<uint(take) | chunk
		r.pos += take
		n -= take
	}

	return value, true
}

// ReadUint64 reads the next 64 bits.
func (r *Reader) ReadUint64() (value uint64, ok bool) {
	return r.ReadBits(64)
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.pos
}

// Pos returns the current bit position.
func (r *Reader) Pos() int { return r.pos }

// Reset rewinds the reader to the start of data.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.pos = 0
}
