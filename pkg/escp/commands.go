// pkg/escp/commands.go
package escp

import (
	"fmt"
	"sort"
)

// Control bytes
const (
	ESC byte = 0x1B
	CR  byte = 0x0D
	LF  byte = 0x0A
	FF  byte = 0x0C
	DC2 byte = 0x12
	SI  byte = 0x0F
)

// Command identifies a printer directive in a CommandTable
type Command int

const (
	CmdInit Command = iota + 1
	CmdCRLF
	CmdCharacterWidth10
	CmdCharacterWidth12
	CmdCharacterWidth15
	CmdBoldOn
	CmdBoldOff
	CmdItalicOn
	CmdItalicOff
	CmdDoubleStrikeOn
	CmdDoubleStrikeOff
	CmdCondensedOn
	CmdCondensedOff
	CmdProportional
	CmdUnderline
	CmdQuality
	CmdTypeface
	CmdMarginLeft
	CmdMarginRight
	CmdMarginBottom
	CmdMarginTop
	CmdPageLengthLines
	CmdPageLengthInches
	CmdExtraSpace
	CmdDoubleWidth
	CmdDoubleHeight
	CmdJustify
	CmdInternationalCharset
	CmdLineSpacing6
	CmdLineSpacing8
	CmdLineSpacing772
	CmdLineSpacingFine
	CmdLineSpacingCoarse
	CmdLineSpacing360
	CmdFormFeed
)

var commandNames = map[Command]string{
	CmdInit:                 "init",
	CmdCRLF:                 "cr_lf",
	CmdCharacterWidth10:     "character_width_10",
	CmdCharacterWidth12:     "character_width_12",
	CmdCharacterWidth15:     "character_width_15",
	CmdBoldOn:               "bold_on",
	CmdBoldOff:              "bold_off",
	CmdItalicOn:             "italic_on",
	CmdItalicOff:            "italic_off",
	CmdDoubleStrikeOn:       "double_strike_on",
	CmdDoubleStrikeOff:      "double_strike_off",
	CmdCondensedOn:          "condensed_on",
	CmdCondensedOff:         "condensed_off",
	CmdProportional:         "proportional",
	CmdUnderline:            "underline",
	CmdQuality:              "quality",
	CmdTypeface:             "typeface",
	CmdMarginLeft:           "margin_left",
	CmdMarginRight:          "margin_right",
	CmdMarginBottom:         "margin_bottom",
	CmdMarginTop:            "margin_top",
	CmdPageLengthLines:      "page_length_in_lines",
	CmdPageLengthInches:     "page_length_in_inches",
	CmdExtraSpace:           "extra_space",
	CmdDoubleWidth:          "double_character_width",
	CmdDoubleHeight:         "double_character_height",
	CmdJustify:              "justify",
	CmdInternationalCharset: "international_charset",
	CmdLineSpacing6:         "line_spacing_1_6",
	CmdLineSpacing8:         "line_spacing_1_8",
	CmdLineSpacing772:       "line_spacing_7_72",
	CmdLineSpacingFine:      "line_spacing_fine",
	CmdLineSpacingCoarse:    "line_spacing_coarse",
	CmdLineSpacing360:       "line_spacing_n_360",
	CmdFormFeed:             "form_feed",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// commonOpcodes are shared by every variant
func commonOpcodes() map[Command][]byte {
	return map[Command][]byte{
		CmdInit:                 {ESC, '@'},
		CmdCRLF:                 {CR, LF},
		CmdCharacterWidth10:     {ESC, 'P'},
		CmdCharacterWidth12:     {ESC, 'M'},
		CmdCharacterWidth15:     {ESC, 'g'},
		CmdBoldOn:               {ESC, 'E'},
		CmdBoldOff:              {ESC, 'F'},
		CmdItalicOn:             {ESC, '4'},
		CmdItalicOff:            {ESC, '5'},
		CmdDoubleStrikeOn:       {ESC, 'G'},
		CmdDoubleStrikeOff:      {ESC, 'H'},
		CmdCondensedOn:          {ESC, SI},
		CmdCondensedOff:         {DC2},
		CmdProportional:         {ESC, 'p'},
		CmdUnderline:            {ESC, '-'},
		CmdQuality:              {ESC, 'x'},
		CmdTypeface:             {ESC, 'k'},
		CmdMarginLeft:           {ESC, 'l'},
		CmdMarginRight:          {ESC, 'Q'},
		CmdMarginBottom:         {ESC, 'N'},
		CmdPageLengthLines:      {ESC, 'C'},
		CmdPageLengthInches:     {ESC, 'C', 0x00},
		CmdExtraSpace:           {ESC, ' '},
		CmdDoubleWidth:          {ESC, 'W'},
		CmdDoubleHeight:         {ESC, 'w'},
		CmdJustify:              {ESC, 'a'},
		CmdInternationalCharset: {ESC, 'R'},
		CmdLineSpacing6:         {ESC, '2'},
		CmdLineSpacing8:         {ESC, '0'},
		CmdLineSpacingFine:      {ESC, '3'},
		CmdLineSpacingCoarse:    {ESC, 'A'},
		CmdFormFeed:             {FF},
	}
}

// variantOpcodes returns the complete opcode set of a variant
func variantOpcodes(v Variant) (map[Command][]byte, error) {
	opcodes := commonOpcodes()
	switch v {
	case ESCP:
		opcodes[CmdLineSpacing772] = []byte{ESC, '1'}
	case ESCP2:
		// ESC ( c nL nH tL tH bL bH: page format
		opcodes[CmdMarginTop] = []byte{ESC, '(', 'c', 0x04, 0x00}
		opcodes[CmdLineSpacing360] = []byte{ESC, '+'}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedVariant, v)
	}
	return opcodes, nil
}

// requiredCommands are the commands the builder emits on the variant
func requiredCommands(v Variant) []Command {
	required := []Command{
		CmdInit, CmdCRLF, CmdCharacterWidth10, CmdCharacterWidth12, CmdCharacterWidth15,
		CmdBoldOn, CmdBoldOff, CmdItalicOn, CmdItalicOff, CmdDoubleStrikeOn, CmdDoubleStrikeOff,
		CmdCondensedOn, CmdCondensedOff, CmdProportional, CmdUnderline, CmdQuality, CmdTypeface,
		CmdMarginLeft, CmdMarginRight, CmdMarginBottom, CmdPageLengthLines, CmdPageLengthInches,
		CmdExtraSpace, CmdDoubleWidth, CmdDoubleHeight, CmdJustify, CmdInternationalCharset,
		CmdFormFeed,
	}
	for _, rule := range v.spacingRules() {
		required = append(required, rule.cmd)
	}
	if v == ESCP2 {
		required = append(required, CmdMarginTop)
	}
	return required
}

// CommandTable maps directives to opcodes for one protocol variant.
// It is never modified after construction.
type CommandTable struct {
	variant Variant
	opcodes map[Command][]byte
}

// NewCommandTable builds the table for v
func NewCommandTable(v Variant) (*CommandTable, error) {
	opcodes, err := variantOpcodes(v)
	if err != nil {
		return nil, err
	}
	return newCommandTable(v, opcodes)
}

func newCommandTable(v Variant, opcodes map[Command][]byte) (*CommandTable, error) {
	table := &CommandTable{
		variant: v,
		opcodes: make(map[Command][]byte, len(opcodes)),
	}
	for cmd, seq := range opcodes {
		table.opcodes[cmd] = append([]byte(nil), seq...)
	}

	for _, cmd := range requiredCommands(v) {
		if len(table.opcodes[cmd]) == 0 {
			return nil, fmt.Errorf("%w: %v has no opcode for %v", ErrProtocolTable, v, cmd)
		}
	}
	return table, nil
}

// Variant returns the protocol variant of the table
func (t *CommandTable) Variant() Variant {
	return t.variant
}

// Lookup returns a copy of the opcode for cmd
func (t *CommandTable) Lookup(cmd Command) ([]byte, error) {
	seq, err := t.opcode(cmd)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), seq...), nil
}

// Supports reports whether cmd exists in the variant
func (t *CommandTable) Supports(cmd Command) bool {
	_, ok := t.opcodes[cmd]
	return ok
}

// Commands lists the table's commands in declaration order
func (t *CommandTable) Commands() []Command {
	out := make([]Command, 0, len(t.opcodes))
	for cmd := range t.opcodes {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *CommandTable) opcode(cmd Command) ([]byte, error) {
	seq, ok := t.opcodes[cmd]
	if !ok {
		return nil, fmt.Errorf("%w: %v on %v", ErrUnsupportedDirective, cmd, t.variant)
	}
	return seq, nil
}
