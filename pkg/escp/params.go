// pkg/escp/params.go
package escp

import (
	"fmt"
	"strings"
)

// Typeface selects the printer font (ESC k n)
type Typeface byte

const (
	Roman      Typeface = 0
	SansSerif  Typeface = 1
	Courier    Typeface = 2
	Prestige   Typeface = 3
	Script     Typeface = 4
	OCRB       Typeface = 5
	OCRA       Typeface = 6
	Orator     Typeface = 7
	OratorS    Typeface = 8
	ScriptC    Typeface = 9
	RomanT     Typeface = 10
	SansSerifH Typeface = 11
)

var typefaceNames = []string{
	"roman", "sans-serif", "courier", "prestige", "script", "ocr-b",
	"ocr-a", "orator", "orator-s", "script-c", "roman-t", "sans-serif-h",
}

func (t Typeface) String() string {
	if int(t) < len(typefaceNames) {
		return typefaceNames[t]
	}
	return fmt.Sprintf("typeface(%d)", byte(t))
}

// ParseTypeface resolves a typeface by name
func ParseTypeface(name string) (Typeface, error) {
	i, err := parseName(name, typefaceNames)
	if err != nil {
		return 0, fmt.Errorf("%w: typeface %q", ErrInvalidParameter, name)
	}
	return Typeface(i), nil
}

// MarginSide selects which margin command is issued
type MarginSide int

const (
	MarginLeft MarginSide = iota
	MarginRight
	MarginBottom
	MarginTop
)

var marginNames = []string{"left", "right", "bottom", "top"}

func (m MarginSide) String() string {
	if m >= 0 && int(m) < len(marginNames) {
		return marginNames[m]
	}
	return fmt.Sprintf("margin(%d)", int(m))
}

// ParseMarginSide resolves a margin side by name
func ParseMarginSide(name string) (MarginSide, error) {
	i, err := parseName(name, marginNames)
	if err != nil {
		return 0, fmt.Errorf("%w: margin side %q", ErrInvalidParameter, name)
	}
	return MarginSide(i), nil
}

// Justification is the ESC a alignment mode
type Justification byte

const (
	JustifyLeft   Justification = 0
	JustifyCenter Justification = 1
	JustifyRight  Justification = 2
	JustifyFull   Justification = 3
)

var justificationNames = []string{"left", "center", "right", "full"}

func (j Justification) String() string {
	if int(j) < len(justificationNames) {
		return justificationNames[j]
	}
	return fmt.Sprintf("justification(%d)", byte(j))
}

// ParseJustification resolves a justification mode by name
func ParseJustification(name string) (Justification, error) {
	i, err := parseName(name, justificationNames)
	if err != nil {
		return 0, fmt.Errorf("%w: justification %q", ErrInvalidParameter, name)
	}
	return Justification(i), nil
}

// PageLengthUnit selects between page length in lines and in inches
type PageLengthUnit int

const (
	Lines PageLengthUnit = iota
	Inches
)

var unitNames = []string{"lines", "inches"}

func (u PageLengthUnit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// ParsePageLengthUnit resolves a page length unit by name
func ParsePageLengthUnit(name string) (PageLengthUnit, error) {
	i, err := parseName(name, unitNames)
	if err != nil {
		return 0, fmt.Errorf("%w: page length unit %q", ErrInvalidParameter, name)
	}
	return PageLengthUnit(i), nil
}

func parseName(name string, names []string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	for i, n := range names {
		if n == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown name %q", name)
}
