package encoding

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/michaelplews/opus/errs"
)

// DecodeLatin1 decodes ISO-8859-1 bytes into a UTF-8 string.
// Every byte maps to exactly one rune, so the charmap decoder never fails and
// its result is returned directly.
func DecodeLatin1(data []byte) string {
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)

	return string(out)
}

// EncodeLatin1 encodes s as ISO-8859-1.
//
// Returns errs.ErrInvalidParameter if s holds a rune outside the Latin-1 range.
func EncodeLatin1(s string) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not representable in Latin-1", errs.ErrInvalidParameter, s)
	}

	return out, nil
}

// CString returns the Latin-1 string preceding the first NUL byte of data,
// or all of data when it holds no NUL.
func CString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}

	return DecodeLatin1(data)
}

// TrimPadding decodes a word-padded text chunk, dropping trailing NUL bytes.
func TrimPadding(data []byte) string {
	return DecodeLatin1(bytes.TrimRight(data, "\x00"))
}
