package core

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns data as UTF-8 without a leading BOM.
//
// Exports from older school systems and Excel "CSV (Comma delimited)" are
// Windows-1252. A file that is not valid UTF-8 is decoded as Windows-1252 as
// a whole, so "Jos\xe9" becomes "José" rather than a replacement character.
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}
	return out, nil
}
