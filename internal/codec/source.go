package codec

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadSource reads a Java source file as text. A UTF-8 or UTF-16 byte order mark
// selects the encoding and is dropped; without one the input is UTF-8.
func ReadSource(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("codec: read source: %w", err)
	}
	return string(b), nil
}
