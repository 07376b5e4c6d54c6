// Package compress provides block codecs for byte payloads, selected by
// a compact Type identifier.
//
// All codecs operate on whole payloads: Compress returns a newly
// allocated slice the caller owns, Decompress validates the input and
// returns the original bytes. Codecs are stateless values and safe for
// concurrent use; internal encoder state is pooled per algorithm.
package compress

import (
	"fmt"

	"github.com/obseq/obseq/errs"
)

// Type identifies a compression algorithm.
type Type byte

const (
	// TypeNone passes payloads through unmodified.
	TypeNone Type = iota + 1
	// TypeZstd selects Zstandard, the best ratio of the set.
	TypeZstd
	// TypeS2 selects S2, the fastest of the set.
	TypeS2
	// TypeLZ4 selects LZ4 block compression.
	TypeLZ4
)

// String returns the canonical lowercase algorithm name.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZstd:
		return "zstd"
	case TypeS2:
		return "s2"
	case TypeLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("type(%d)", byte(t))
	}
}

// ParseType maps a canonical name back to its Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "none":
		return TypeNone, nil
	case "zstd":
		return TypeZstd, nil
	case "s2":
		return TypeS2, nil
	case "lz4":
		return TypeLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCodec, name)
	}
}

// Compressor compresses whole payloads.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses data previously produced by the matching
	// algorithm and returns a newly allocated result. Corrupted or
	// mismatched input yields an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtin = map[Type]Codec{
	TypeNone: NoopCodec{},
	TypeZstd: ZstdCodec{},
	TypeS2:   S2Codec{},
	TypeLZ4:  LZ4Codec{},
}

// NewCodec returns the codec for t.
func NewCodec(t Type) (Codec, error) {
	c, ok := builtin[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCodec, t)
	}

	return c, nil
}
