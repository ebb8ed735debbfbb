package hookbatch

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// ModuleNameFromUTF16 decodes a little-endian UTF-16 module name, as
// returned by wide-character loader APIs, for log attribution. A
// trailing NUL terminator is dropped.
func ModuleNameFromUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("odd UTF-16 length %d", len(b))
	}
	for len(b) >= 2 && b[len(b)-2] == 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-2]
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode module name: %w", err)
	}
	return string(out), nil
}
