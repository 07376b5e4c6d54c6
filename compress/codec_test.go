package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obseq/obseq/errs"
)

func allTypes() []Type {
	return []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4}
}

// Payloads with different compressibility profiles.
func testPayloads(t *testing.T) map[string][]byte {
	t.Helper()

	repetitive := bytes.Repeat([]byte("abcdefgh"), 512)

	random := make([]byte, 4096)
	rng := rand.New(rand.NewSource(42))
	_, err := rng.Read(random)
	require.NoError(t, err)

	return map[string][]byte{
		"repetitive": repetitive,
		"random":     random,
		"tiny":       []byte("x"),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	payloads := testPayloads(t)

	for _, typ := range allTypes() {
		codec, err := NewCodec(typ)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, payload, restored)
			})
		}
	}
}

func TestCodec_EmptyInput(t *testing.T) {
	for _, typ := range allTypes() {
		codec, err := NewCodec(typ)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		restored, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestCodec_CompressesRepetitiveData(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 512)

	for _, typ := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		codec, err := NewCodec(typ)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), "codec %s", typ)
	}
}

func TestCodec_DecompressCorruptedInput(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02, 0x03}

	for _, typ := range []Type{TypeZstd, TypeS2} {
		codec, err := NewCodec(typ)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, "codec %s", typ)
	}
}

func TestNoopCodec_AliasesInput(t *testing.T) {
	payload := []byte("as-is")

	out, err := NoopCodec{}.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, &payload[0], &out[0])
}

func TestNewCodec_Unknown(t *testing.T) {
	_, err := NewCodec(Type(99))
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

func TestType_StringParseRoundTrip(t *testing.T) {
	for _, typ := range allTypes() {
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, parsed)
	}

	_, err := ParseType("brotli")
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}
