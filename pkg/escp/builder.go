// pkg/escp/builder.go
package escp

import (
	"fmt"
	"io"

	"escp-service/pkg/escp/charset"
)

// topMarginBottom is the bottom position written with a top margin:
// 22 inches in the default 1/360 inch unit.
const topMarginBottom = 22 * 360

// Builder accumulates the bytes of a print job. Every directive returns the
// builder so calls can be chained. A failing directive appends nothing and
// its error is kept until ClearErr or Clear; later directives still append.
// When several fail, Err reports the first. A Builder must not be used from
// several goroutines at once.
type Builder struct {
	table *CommandTable
	buf   []byte
	err   error
}

// NewBuilder returns an empty builder for variant v
func NewBuilder(v Variant) (*Builder, error) {
	table, err := NewCommandTable(v)
	if err != nil {
		return nil, err
	}
	return &Builder{table: table}, nil
}

// Variant returns the protocol variant the builder encodes for
func (b *Builder) Variant() Variant {
	return b.table.Variant()
}

// Table returns the command table the builder is bound to
func (b *Builder) Table() *CommandTable {
	return b.table
}

// Err returns the first error recorded since construction, the last Clear
// or the last ClearErr
func (b *Builder) Err() error {
	return b.err
}

// ClearErr forgets the recorded error and keeps the buffer
func (b *Builder) ClearErr() *Builder {
	b.err = nil
	return b
}

// Bytes returns a copy of the accumulated buffer
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf...)
}

// Len returns the buffer size in bytes
func (b *Builder) Len() int {
	return len(b.buf)
}

// WriteTo writes the buffer to w without clearing it
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// Clear empties the buffer and forgets any recorded error
func (b *Builder) Clear() *Builder {
	b.buf = b.buf[:0]
	b.err = nil
	return b
}

// Init resets the printer (ESC @)
func (b *Builder) Init() *Builder {
	return b.emit(CmdInit)
}

// Text appends content encoded for code page cp. Characters that would
// print a different glyph, or that have no byte at all, fail the directive.
func (b *Builder) Text(content string, cp *charset.CodePage) *Builder {
	encoded, err := charset.Encode(content, cp)
	if err != nil {
		return b.fail(err)
	}
	b.buf = append(b.buf, encoded...)
	return b
}

// Raw appends pre-encoded bytes unchanged
func (b *Builder) Raw(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// CarriageReturnLineFeed appends count CR/LF pairs
func (b *Builder) CarriageReturnLineFeed(count int) *Builder {
	if count < 1 {
		return b.fail(fmt.Errorf("%w: line feed count %d", ErrInvalidParameter, count))
	}
	seq, err := b.table.opcode(CmdCRLF)
	if err != nil {
		return b.fail(err)
	}
	for i := 0; i < count; i++ {
		b.buf = append(b.buf, seq...)
	}
	return b
}

// Bold toggles emphasized printing
func (b *Builder) Bold(enabled bool) *Builder {
	return b.toggle(enabled, CmdBoldOn, CmdBoldOff)
}

// Italic toggles italic printing
func (b *Builder) Italic(enabled bool) *Builder {
	return b.toggle(enabled, CmdItalicOn, CmdItalicOff)
}

// DoubleStrike prints each dot twice, the second slightly below the first
func (b *Builder) DoubleStrike(enabled bool) *Builder {
	return b.toggle(enabled, CmdDoubleStrikeOn, CmdDoubleStrikeOff)
}

// Condensed toggles condensed printing: 17 cpi from 10 cpi, 20 cpi from 12 cpi.
func (b *Builder) Condensed(enabled bool) *Builder {
	return b.toggle(enabled, CmdCondensedOn, CmdCondensedOff)
}

// Proportional toggles proportional printing. Fixed-pitch changes made while
// it is on take effect only once it is turned off, and condensed printing is
// ignored while it is on.
func (b *Builder) Proportional(enabled bool) *Builder {
	return b.emit(CmdProportional, flag(enabled))
}

// Underline toggles continuous underline
func (b *Builder) Underline(enabled bool) *Builder {
	return b.emit(CmdUnderline, flag(enabled))
}

// Draft selects draft quality when enabled, letter quality otherwise
func (b *Builder) Draft(enabled bool) *Builder {
	return b.emit(CmdQuality, flag(!enabled))
}

// CharacterWidth selects a fixed pitch of 10, 12 or 15 characters per inch
func (b *Builder) CharacterWidth(width int) *Builder {
	switch width {
	case 10:
		return b.emit(CmdCharacterWidth10)
	case 12:
		return b.emit(CmdCharacterWidth12)
	case 15:
		return b.emit(CmdCharacterWidth15)
	default:
		return b.fail(fmt.Errorf("%w: character width %d", ErrInvalidParameter, width))
	}
}

// Typeface selects a font supported by the variant
func (b *Builder) Typeface(face Typeface) *Builder {
	if !b.Variant().supportsTypeface(face) {
		return b.fail(fmt.Errorf("%w: typeface %v on %v", ErrInvalidParameter, face, b.Variant()))
	}
	return b.emit(CmdTypeface, byte(face))
}

// Margin sets one margin. Left and right are in columns of the current pitch
// measured from the left edge; the right margin must exceed the left one.
// Bottom is in lines from the perforation. Top exists on ESC/P2 only and is in
// the default 1/360 inch unit.
func (b *Builder) Margin(side MarginSide, value int) *Builder {
	if value < 0 || value > 255 {
		return b.fail(fmt.Errorf("%w: %v margin %d", ErrInvalidParameter, side, value))
	}

	switch side {
	case MarginLeft:
		return b.emit(CmdMarginLeft, byte(value))
	case MarginRight:
		return b.emit(CmdMarginRight, byte(value))
	case MarginBottom:
		return b.emit(CmdMarginBottom, byte(value))
	case MarginTop:
		return b.emit(CmdMarginTop,
			byte(value), 0x00,
			byte(topMarginBottom&0xFF), byte(topMarginBottom>>8))
	default:
		return b.fail(fmt.Errorf("%w: margin side %v", ErrInvalidParameter, side))
	}
}

// PageLength sets the page length in lines or inches. Set line spacing first;
// the length is fixed in inches when issued. Setting it cancels the bottom margin.
// The value is sent as one byte: 0 to 255 are written as given and anything
// else fails with ErrInvalidParameter rather than being truncated. The printer
// itself accepts 1 to 127 lines or 1 to 22 inches.
func (b *Builder) PageLength(value int, unit PageLengthUnit) *Builder {
	if value < 0 || value > 255 {
		return b.fail(fmt.Errorf("%w: page length %d", ErrInvalidParameter, value))
	}

	switch unit {
	case Lines:
		return b.emit(CmdPageLengthLines, byte(value))
	case Inches:
		return b.emit(CmdPageLengthInches, byte(value))
	default:
		return b.fail(fmt.Errorf("%w: page length unit %v", ErrInvalidParameter, unit))
	}
}

// ExtraSpace adds space between characters, in 1/120 inch on 9-pin printers
// and 1/180 inch otherwise.
func (b *Builder) ExtraSpace(value int) *Builder {
	if value < 0 || value > 255 {
		return b.fail(fmt.Errorf("%w: extra space %d", ErrInvalidParameter, value))
	}
	return b.emit(CmdExtraSpace, byte(value))
}

// DoubleCharacterWidth toggles double-width characters
func (b *Builder) DoubleCharacterWidth(enabled bool) *Builder {
	return b.emit(CmdDoubleWidth, flag(enabled))
}

// DoubleCharacterHeight toggles double-height characters
func (b *Builder) DoubleCharacterHeight(enabled bool) *Builder {
	return b.emit(CmdDoubleHeight, flag(enabled))
}

// Justify sets the alignment of following lines. Issue it at the start of a
// line and before any font change; full justification only applies to lines
// wider than 75% of the printable area.
func (b *Builder) Justify(mode Justification) *Builder {
	if mode > JustifyFull {
		return b.fail(fmt.Errorf("%w: justification %v", ErrInvalidParameter, mode))
	}
	return b.emit(CmdJustify, byte(mode))
}

// LineSpacing sets the line feed distance to numerator/denominator inch.
// Set it before the page length; changing it later does not alter the page.
func (b *Builder) LineSpacing(numerator, denominator int) *Builder {
	cmd, param, err := resolveSpacing(b.Variant(), numerator, denominator)
	if err != nil {
		return b.fail(err)
	}
	return b.emit(cmd, param...)
}

// InternationalCharset selects the printer's international character set.
// Text encoding always assumes the USA set regardless of this selection.
func (b *Builder) InternationalCharset(set charset.Set) *Builder {
	if !set.Valid() {
		return b.fail(fmt.Errorf("%w: international character set %v", ErrInvalidParameter, set))
	}
	return b.emit(CmdInternationalCharset, byte(set))
}

// FormFeed ejects the current page
func (b *Builder) FormFeed() *Builder {
	return b.emit(CmdFormFeed)
}

func (b *Builder) toggle(enabled bool, on, off Command) *Builder {
	if enabled {
		return b.emit(on)
	}
	return b.emit(off)
}

func (b *Builder) emit(cmd Command, params ...byte) *Builder {
	seq, err := b.table.opcode(cmd)
	if err != nil {
		return b.fail(err)
	}
	b.buf = append(b.buf, seq...)
	b.buf = append(b.buf, params...)
	return b
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func flag(enabled bool) byte {
	if enabled {
		return 1
	}
	return 0
}
