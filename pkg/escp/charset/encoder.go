// pkg/escp/charset/encoder.go
package charset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEncoding means the character is only reachable through an
	// international character set the printer is not assumed to have active.
	ErrInvalidEncoding = errors.New("character prints differently under the default character set")

	// ErrEncodingRange means no printer byte represents the character
	ErrEncodingRange = errors.New("character not representable in code page")

	ErrUnknownCodePage = errors.New("unknown code page")
)

// EncodingError describes the first character of a text that failed to encode
type EncodingError struct {
	Rune     rune
	Offset   int
	CodePage string
	Sets     []Set
	Err      error
}

func (e *EncodingError) Error() string {
	if len(e.Sets) == 0 {
		return fmt.Sprintf("%v: %q at offset %d in %s", e.Err, e.Rune, e.Offset, e.CodePage)
	}
	names := make([]string, len(e.Sets))
	for i, s := range e.Sets {
		names[i] = s.String()
	}
	return fmt.Sprintf("%v: %q at offset %d in %s (needs international set %s)",
		e.Err, e.Rune, e.Offset, e.CodePage, strings.Join(names, ", "))
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Encode converts s into bytes of the given code page. Every character must
// print the same glyph on a printer running the default (USA) international
// character set; a nil code page means ASCII.
func Encode(s string, cp *CodePage) ([]byte, error) {
	if cp == nil {
		cp = ASCII
	}

	out := make([]byte, 0, len(s))
	for offset, r := range s {
		if b, ok := cp.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}

		if placements := alternates[r]; len(placements) > 0 {
			setList := make([]Set, len(placements))
			for i, p := range placements {
				setList[i] = p.Set
			}
			return nil, &EncodingError{Rune: r, Offset: offset, CodePage: cp.name, Sets: setList, Err: ErrInvalidEncoding}
		}

		return nil, &EncodingError{Rune: r, Offset: offset, CodePage: cp.name, Err: ErrEncodingRange}
	}

	return out, nil
}
