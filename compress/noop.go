package compress

// NoopCodec passes payloads through untouched. It is the codec behind
// TypeNone and a convenient baseline in benchmarks.
//
// Both directions return the input slice as-is, without copying, so the
// output aliases the caller's data.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// Compress returns data unmodified.
func (NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unmodified.
func (NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
