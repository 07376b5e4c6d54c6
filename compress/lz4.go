package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4Pool reuses lz4.Compressor instances; the compressor keeps hash
// tables that are expensive to rebuild per call.
var lz4Pool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec compresses payloads as raw LZ4 blocks.
//
// LZ4 blocks do not record the decompressed size, so Decompress sizes
// its output adaptively: start at 4x the input and double on a short
// buffer, up to a 128MB safety ceiling.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// Compress compresses data as a single LZ4 block.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc := lz4Pool.Get().(*lz4.Compressor)
	defer lz4Pool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress restores an LZ4 block.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	const maxSize = 128 * 1024 * 1024

	for bufSize := len(data) * 4; bufSize <= maxSize; bufSize *= 2 {
		buf := make([]byte, bufSize)

		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	// Past the ceiling the input is corrupt rather than merely large.
	return nil, lz4.ErrInvalidSourceShortBuffer
}
