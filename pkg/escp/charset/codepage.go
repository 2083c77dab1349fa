// pkg/escp/charset/codepage.go
package charset

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// CodePage is a fixed 8-bit character-to-byte mapping the encoder targets
type CodePage struct {
	name    string
	aliases []string
	cm      *charmap.Charmap
}

// Supported code pages. ASCII is the 7-bit printer default; the names
// "utf-8" and "utf8" resolve to it because only the ASCII subset of UTF-8
// is single-byte.
var (
	ASCII      = &CodePage{name: "ascii", aliases: []string{"us-ascii", "utf-8", "utf8"}}
	CP437      = &CodePage{name: "cp437", aliases: []string{"ibm437", "pc437"}, cm: charmap.CodePage437}
	CP850      = &CodePage{name: "cp850", aliases: []string{"ibm850", "pc850"}, cm: charmap.CodePage850}
	CP852      = &CodePage{name: "cp852", aliases: []string{"ibm852", "pc852"}, cm: charmap.CodePage852}
	CP858      = &CodePage{name: "cp858", aliases: []string{"ibm858", "pc858"}, cm: charmap.CodePage858}
	CP860      = &CodePage{name: "cp860", aliases: []string{"ibm860", "pc860"}, cm: charmap.CodePage860}
	CP863      = &CodePage{name: "cp863", aliases: []string{"ibm863", "pc863"}, cm: charmap.CodePage863}
	CP865      = &CodePage{name: "cp865", aliases: []string{"ibm865", "pc865"}, cm: charmap.CodePage865}
	CP866      = &CodePage{name: "cp866", aliases: []string{"ibm866", "pc866"}, cm: charmap.CodePage866}
	ISO8859_1  = &CodePage{name: "iso-8859-1", aliases: []string{"latin1", "iso8859-1"}, cm: charmap.ISO8859_1}
	ISO8859_15 = &CodePage{name: "iso-8859-15", aliases: []string{"latin9", "iso8859-15"}, cm: charmap.ISO8859_15}
)

var codePages = []*CodePage{
	ASCII, CP437, CP850, CP852, CP858, CP860, CP863, CP865, CP866, ISO8859_1, ISO8859_15,
}

// Lookup resolves a code page by name or alias, ignoring case
func Lookup(name string) (*CodePage, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, cp := range codePages {
		if cp.name == key {
			return cp, nil
		}
		for _, alias := range cp.aliases {
			if alias == key {
				return cp, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodePage, name)
}

// CodePages returns all supported code pages
func CodePages() []*CodePage {
	out := make([]*CodePage, len(codePages))
	copy(out, codePages)
	return out
}

// Name returns the canonical code page name
func (cp *CodePage) Name() string {
	return cp.name
}

func (cp *CodePage) String() string {
	return cp.name
}

// EncodeRune returns the byte r occupies in the code page
func (cp *CodePage) EncodeRune(r rune) (byte, bool) {
	if cp.cm == nil {
		if r >= 0 && r < utf8.RuneSelf {
			return byte(r), true
		}
		return 0, false
	}
	return cp.cm.EncodeRune(r)
}
