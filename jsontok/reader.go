// Package jsontok provides a thin streaming layer over JSON input: a
// token Reader for walking documents incrementally, and path-based
// extraction for pulling single values out of raw bytes without
// decoding the rest.
package jsontok

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/obseq/obseq/errs"
)

// Reader walks a JSON document token by token. Expectation methods
// return errs.ErrUnexpectedToken (wrapped with position context) when
// the document does not match; the underlying decode error otherwise.
type Reader struct {
	dec *json.Decoder
}

// NewReader returns a Reader over r. Numbers are surfaced as
// json.Number so integer precision survives.
func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	return &Reader{dec: dec}
}

// NewBytesReader returns a Reader over data.
func NewBytesReader(data []byte) *Reader {
	return NewReader(bytes.NewReader(data))
}

// Token returns the next token in the document.
func (r *Reader) Token() (json.Token, error) {
	return r.dec.Token()
}

// More reports whether the current array or object has another element.
func (r *Reader) More() bool {
	return r.dec.More()
}

// Offset returns the byte offset just past the last returned token.
func (r *Reader) Offset() int64 {
	return r.dec.InputOffset()
}

// ExpectDelim consumes the next token and requires it to be the
// delimiter d, one of '{', '}', '[' or ']'.
func (r *Reader) ExpectDelim(d rune) error {
	tok, err := r.dec.Token()
	if err != nil {
		return err
	}

	if got, ok := tok.(json.Delim); !ok || rune(got) != d {
		return fmt.Errorf("%w: want %q, got %v at offset %d",
			errs.ErrUnexpectedToken, d, tok, r.dec.InputOffset())
	}

	return nil
}

// ReadString consumes the next token and requires a string.
func (r *Reader) ReadString() (string, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return "", err
	}

	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: want string, got %v at offset %d",
			errs.ErrUnexpectedToken, tok, r.dec.InputOffset())
	}

	return s, nil
}

// ReadNumber consumes the next token and requires a number.
func (r *Reader) ReadNumber() (json.Number, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return "", err
	}

	n, ok := tok.(json.Number)
	if !ok {
		return "", fmt.Errorf("%w: want number, got %v at offset %d",
			errs.ErrUnexpectedToken, tok, r.dec.InputOffset())
	}

	return n, nil
}

// ReadInt consumes the next token and requires an integer number.
func (r *Reader) ReadInt() (int64, error) {
	n, err := r.ReadNumber()
	if err != nil {
		return 0, err
	}

	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: non-integer number %s", errs.ErrUnexpectedToken, n)
	}

	return v, nil
}

// ReadFloat consumes the next token and requires a number, returned as
// float64.
func (r *Reader) ReadFloat() (float64, error) {
	n, err := r.ReadNumber()
	if err != nil {
		return 0, err
	}

	return n.Float64()
}

// ReadBool consumes the next token and requires a boolean.
func (r *Reader) ReadBool() (bool, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return false, err
	}

	b, ok := tok.(bool)
	if !ok {
		return false, fmt.Errorf("%w: want bool, got %v at offset %d",
			errs.ErrUnexpectedToken, tok, r.dec.InputOffset())
	}

	return b, nil
}

// Skip consumes the next value in full, descending through nested
// arrays and objects.
func (r *Reader) Skip() error {
	tok, err := r.dec.Token()
	if err != nil {
		return err
	}

	d, ok := tok.(json.Delim)
	if !ok || d == '}' || d == ']' {
		// Scalar values are a single token; a closing delimiter means
		// the caller mis-counted, which the decoder already rejects.
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err = r.dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}

	return nil
}
