// pkg/escp/charset/international.go
package charset

import (
	"fmt"
	"sort"
	"strings"
)

// Set identifies a printer international character set (ESC R n)
type Set byte

const (
	USA          Set = 0
	France       Set = 1
	Germany      Set = 2
	UK           Set = 3
	DenmarkI     Set = 4
	Sweden       Set = 5
	Italy        Set = 6
	SpainI       Set = 7
	Japan        Set = 8
	Norway       Set = 9
	DenmarkII    Set = 10
	SpainII      Set = 11
	LatinAmerica Set = 12
	Korea        Set = 13
	Legal        Set = 64
)

// swapPositions are the byte values an international character set redefines
var swapPositions = [12]byte{0x23, 0x24, 0x40, 0x5B, 0x5C, 0x5D, 0x5E, 0x60, 0x7B, 0x7C, 0x7D, 0x7E}

type setInfo struct {
	name   string
	glyphs string // one rune per entry of swapPositions
}

var sets = map[Set]setInfo{
	USA:          {"usa", "#$@[\\]^`{|}~"},
	France:       {"france", "#$à°ç§^`éùè¨"},
	Germany:      {"germany", "#$§ÄÖÜ^`äöüß"},
	UK:           {"uk", "£$@[\\]^`{|}~"},
	DenmarkI:     {"denmark-1", "#$@ÆØÅ^`æøå~"},
	Sweden:       {"sweden", "#¤ÉÄÖÅÜéäöåü"},
	Italy:        {"italy", "#$@°\\é^ùàòèì"},
	SpainI:       {"spain-1", "₧$@¡Ñ¿^`¨ñ}~"},
	Japan:        {"japan", "#$@[¥]^`{|}~"},
	Norway:       {"norway", "#¤ÉÆØÅÜéæøåü"},
	DenmarkII:    {"denmark-2", "#$ÉÆØÅÜéæøåü"},
	SpainII:      {"spain-2", "#$á¡Ñ¿é`íñóú"},
	LatinAmerica: {"latin-america", "#$á¡Ñ¿éüíñóú"},
	Korea:        {"korea", "#$@[₩]^`{|}~"},
	Legal:        {"legal", "#$§°'\"¶`©®†™"},
}

// Placement is a byte position at which a set prints a given rune
type Placement struct {
	Set  Set
	Byte byte
}

// alternates maps a rune to the places it appears only under a non-USA set
var alternates = buildAlternates()

func buildAlternates() map[rune][]Placement {
	usa := []rune(sets[USA].glyphs)
	out := make(map[rune][]Placement)
	for _, set := range Sets() {
		for i, r := range []rune(sets[set].glyphs) {
			if r == usa[i] {
				continue
			}
			out[r] = append(out[r], Placement{Set: set, Byte: swapPositions[i]})
		}
	}
	return out
}

// Sets returns every known international character set in ascending order
func Sets() []Set {
	out := make([]Set, 0, len(sets))
	for s := range sets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether s is a known character set
func (s Set) Valid() bool {
	_, ok := sets[s]
	return ok
}

func (s Set) String() string {
	if info, ok := sets[s]; ok {
		return info.name
	}
	return fmt.Sprintf("set(%d)", byte(s))
}

// Glyph returns the rune the set prints for byte b
func (s Set) Glyph(b byte) rune {
	info, ok := sets[s]
	if !ok {
		return rune(b)
	}
	glyphs := []rune(info.glyphs)
	for i, pos := range swapPositions {
		if pos == b {
			return glyphs[i]
		}
	}
	return rune(b)
}

// ParseSet resolves a character set by name
func ParseSet(name string) (Set, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for s, info := range sets {
		if info.name == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown international character set %q", name)
}

// Alternates returns the non-default placements of r, if any
func Alternates(r rune) []Placement {
	p := alternates[r]
	out := make([]Placement, len(p))
	copy(out, p)
	return out
}
