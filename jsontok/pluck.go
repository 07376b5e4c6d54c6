package jsontok

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/obseq/obseq/errs"
)

// Valid reports whether data is well-formed JSON.
func Valid(data []byte) bool {
	return gjson.ValidBytes(data)
}

// Pluck extracts the value at path from data without parsing the rest
// of the document. Path syntax is gjson's dotted form, e.g.
// "items.3.name" or "meta.#(id==7).label".
func Pluck(data []byte, path string) (gjson.Result, error) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: %q", errs.ErrPathNotFound, path)
	}

	return res, nil
}

// PluckString extracts a string value at path.
func PluckString(data []byte, path string) (string, error) {
	res, err := Pluck(data, path)
	if err != nil {
		return "", err
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("%w: %q is %s, want string",
			errs.ErrUnexpectedToken, path, res.Type)
	}

	return res.Str, nil
}

// PluckInt extracts an integer value at path.
func PluckInt(data []byte, path string) (int64, error) {
	res, err := Pluck(data, path)
	if err != nil {
		return 0, err
	}
	if res.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %q is %s, want number",
			errs.ErrUnexpectedToken, path, res.Type)
	}

	return res.Int(), nil
}

// PluckBool extracts a boolean value at path.
func PluckBool(data []byte, path string) (bool, error) {
	res, err := Pluck(data, path)
	if err != nil {
		return false, err
	}
	if !res.IsBool() {
		return false, fmt.Errorf("%w: %q is %s, want bool",
			errs.ErrUnexpectedToken, path, res.Type)
	}

	return res.Bool(), nil
}
