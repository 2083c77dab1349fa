// internal/testpage/testpage.go
package testpage

import (
	"fmt"

	"escp-service/pkg/escp"
	"escp-service/pkg/escp/charset"
)

const fox = "The quick brown fox jumps over the lazy dog"

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor\r\n" +
	"incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam,\r\n" +
	"quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.\r\n" +
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu\r\n" +
	"fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in\r\n" +
	"culpa qui officia deserunt mollit anim id est laborum."

const poem = `When I heard the learn'd astronomer
When the proofs, the figures, were ranged in columns before me
When I was shown the charts and diagrams, to add, divide, and measure them
When I sitting heard the astronomer where he lectured
with much applause in the lecture-room
How soon unaccountable I became tired and sick
Till rising and gliding out I wander'd off by myself
In the mystical moist night-air, and from time to time
Look'd up in perfect silence at the stars
`

// Kinds lists the sample jobs by name
var Kinds = []string{"page", "astronomer"}

// Build returns the named sample job for a printer with pins
func Build(kind string, pins int) ([]byte, error) {
	switch kind {
	case "page":
		return Page(pins)
	case "astronomer":
		return Astronomer(pins)
	default:
		return nil, fmt.Errorf("%w: unknown sample %q", escp.ErrInvalidParameter, kind)
	}
}

// Page exercises every text directive the variant supports. Each section
// starts from a freshly initialised printer in letter quality sans serif.
func Page(pins int) ([]byte, error) {
	b, err := escp.SelectVariant(pins)
	if err != nil {
		return nil, err
	}
	cp := charset.ASCII
	reset := func() {
		b.Init().Draft(false).Typeface(escp.SansSerif)
	}

	reset()
	b.Text("ESC/P direct printing test page", cp).CarriageReturnLineFeed(2)
	reset()

	b.Text("Text enhancements", cp).CarriageReturnLineFeed(1)
	b.Text("Bold", cp).CarriageReturnLineFeed(1)
	b.Bold(true).Text(fox, cp).Bold(false).CarriageReturnLineFeed(1)
	b.Text("Italic", cp).CarriageReturnLineFeed(1)
	b.Italic(true).Text(fox, cp).Italic(false).CarriageReturnLineFeed(1)
	b.Text("Underline", cp).CarriageReturnLineFeed(1)
	b.Underline(true).Text(fox, cp).Underline(false).CarriageReturnLineFeed(1)
	b.Text("Double strike", cp).CarriageReturnLineFeed(1)
	b.DoubleStrike(true).Text(fox, cp).DoubleStrike(false).CarriageReturnLineFeed(2)
	reset()

	b.Text("Character width", cp).CarriageReturnLineFeed(1)
	for _, width := range []int{10, 12, 15} {
		b.Text(fmt.Sprintf("1/%d char width", width), cp).
			CarriageReturnLineFeed(1).
			CharacterWidth(width).
			Text(fox, cp).
			CarriageReturnLineFeed(1)
	}
	b.CarriageReturnLineFeed(1)
	reset()

	b.Text("Typeface", cp).CarriageReturnLineFeed(1)
	for _, face := range b.Variant().Typefaces() {
		b.Typeface(escp.SansSerif).Text(face.String(), cp).CarriageReturnLineFeed(1)
		b.Typeface(face).Text("    "+fox, cp).CarriageReturnLineFeed(1)
	}
	b.CarriageReturnLineFeed(1)
	reset()

	b.Text("Margins (left)", cp).CarriageReturnLineFeed(1)
	for _, margin := range []int{0, 4, 8} {
		b.Margin(escp.MarginLeft, margin).
			Text(fmt.Sprintf("[x] text started at col %d", margin), cp).
			CarriageReturnLineFeed(1)
	}
	b.CarriageReturnLineFeed(1)
	reset()

	b.Text("Character size", cp).CarriageReturnLineFeed(1)
	b.DoubleCharacterWidth(true).Text("Double character width", cp).DoubleCharacterWidth(false).CarriageReturnLineFeed(2)
	b.DoubleCharacterHeight(true).Text("Double character height", cp).DoubleCharacterHeight(false).CarriageReturnLineFeed(2)
	b.DoubleCharacterWidth(true).
		DoubleCharacterHeight(true).
		Text("Double character width and height", cp).
		DoubleCharacterWidth(false).
		DoubleCharacterHeight(false).
		CarriageReturnLineFeed(2)
	reset()

	b.Text("Extra space between characters", cp).CarriageReturnLineFeed(1)
	for _, extra := range []int{1, 5, 10} {
		b.Text(fmt.Sprintf("%d extra", extra), cp).
			CarriageReturnLineFeed(1).
			ExtraSpace(extra).
			Text(fox, cp).
			CarriageReturnLineFeed(1)
		reset()
	}
	b.CarriageReturnLineFeed(1)

	b.Text("Condensed text", cp).CarriageReturnLineFeed(1)
	b.Condensed(true).Text(fox, cp).Text(". ", cp).Text(fox, cp).Condensed(false).CarriageReturnLineFeed(2)
	reset()

	b.Text("Line spacing", cp).CarriageReturnLineFeed(1).
		Text("(not specified)", cp).CarriageReturnLineFeed(1).
		Text(fox, cp).CarriageReturnLineFeed(1).Text(fox, cp).CarriageReturnLineFeed(1)
	for _, den := range []int{8, 6} {
		b.Text(fmt.Sprintf("1/%d", den), cp).CarriageReturnLineFeed(1).
			LineSpacing(1, den).
			Text(fox, cp).CarriageReturnLineFeed(1).Text(fox, cp).CarriageReturnLineFeed(1)
	}
	b.CarriageReturnLineFeed(1)
	reset()

	b.Text("Proportional text", cp).CarriageReturnLineFeed(1)
	b.Proportional(true).Text(lorem, cp).Proportional(false).CarriageReturnLineFeed(2)
	reset()

	b.Text("Justification (with proportional)", cp).CarriageReturnLineFeed(1)
	b.Proportional(true)
	b.Justify(escp.JustifyLeft).Text(fox, cp).CarriageReturnLineFeed(1)
	b.Justify(escp.JustifyCenter).Text(fox, cp).CarriageReturnLineFeed(1)
	b.Justify(escp.JustifyRight).Text(fox, cp).CarriageReturnLineFeed(2)
	reset()

	b.Proportional(true).Justify(escp.JustifyCenter).Text(lorem, cp).CarriageReturnLineFeed(2)
	reset()

	b.Proportional(true).Justify(escp.JustifyFull).Text(lorem, cp).CarriageReturnLineFeed(2)
	b.Proportional(false)
	reset()

	b.FormFeed()

	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("failed to build test page: %w", err)
	}
	return b.Bytes(), nil
}

// Astronomer prints Whitman's poem centred in proportional type
func Astronomer(pins int) ([]byte, error) {
	b, err := escp.SelectVariant(pins)
	if err != nil {
		return nil, err
	}
	cp := charset.ASCII

	b.Init().
		Justify(escp.JustifyCenter).
		Proportional(true).
		LineSpacing(45, 216).
		Bold(true).Text("When I heard the learn'd astronomer", cp).Bold(false).CarriageReturnLineFeed(2).
		Italic(true).Text("by Walt Whitman", cp).Italic(false).CarriageReturnLineFeed(2).
		Text(poem, cp).
		FormFeed()

	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("failed to build astronomer sample: %w", err)
	}
	return b.Bytes(), nil
}
