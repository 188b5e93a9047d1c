// Package music models pitch, intervals, modes and keys with the enharmonic
// spelling rules chord charts care about. Notes are stored ASCII-canonical
// ('b' / '#'); the unicode glyphs are accepted on input and produced only for
// presentation.
package music

import (
	"strings"
	"unicode"
)

const (
	FlatGlyph  = "♭" // ♭
	SharpGlyph = "♯" // ♯
)

type Accidental int

const (
	Natural Accidental = iota
	Flat
	Sharp
)

// Note is a pitch-class spelling: a letter A-G plus at most one accidental.
// Equality is by spelling, so D# and Eb are distinct notes that share a
// chromatic index.
type Note struct {
	Letter     byte
	Accidental Accidental
}

// Chromatic indexes are A-based: A=0 ... G#/Ab=11.
var naturalIndex = map[byte]int{
	'A': 0, 'B': 2, 'C': 3, 'D': 5, 'E': 7, 'F': 8, 'G': 10,
}

var sharpTable = [12]Note{
	{'A', Natural}, {'A', Sharp}, {'B', Natural}, {'C', Natural},
	{'C', Sharp}, {'D', Natural}, {'D', Sharp}, {'E', Natural},
	{'F', Natural}, {'F', Sharp}, {'G', Natural}, {'G', Sharp},
}

var flatTable = [12]Note{
	{'A', Natural}, {'B', Flat}, {'B', Natural}, {'C', Natural},
	{'D', Flat}, {'D', Natural}, {'E', Flat}, {'E', Natural},
	{'F', Natural}, {'G', Flat}, {'G', Natural}, {'A', Flat},
}

// ParseNote reads a letter plus optional single accidental. The letter is
// case-insensitive and the accidental may be ASCII (b, #) or unicode (♭, ♯).
// Any 21 letter/accidental spelling parses, Cb and E# included; doubled
// accidentals and trailing text do not.
func ParseNote(s string) (Note, error) {
	runes := []rune(s)
	if len(runes) == 0 || len(runes) > 2 {
		return Note{}, &InvalidNoteError{Text: s}
	}
	letter := unicode.ToUpper(runes[0])
	if letter < 'A' || letter > 'G' {
		return Note{}, &InvalidNoteError{Text: s}
	}
	n := Note{Letter: byte(letter)}
	if len(runes) == 2 {
		switch runes[1] {
		case 'b', '♭':
			n.Accidental = Flat
		case '#', '♯':
			n.Accidental = Sharp
		default:
			return Note{}, &InvalidNoteError{Text: s}
		}
	}
	return n, nil
}

// MustParseNote is ParseNote for static spellings; it panics on bad input.
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Chromatic returns the note's pitch-class index 0-11 (A-based).
func (n Note) Chromatic() int {
	base, ok := naturalIndex[n.Letter]
	if !ok {
		panic("music: note with invalid letter " + string(n.Letter))
	}
	switch n.Accidental {
	case Flat:
		return (base + 11) % 12
	case Sharp:
		return (base + 1) % 12
	default:
		return base
	}
}

// Enharmonic returns the other table spelling of the same pitch class, e.g.
// A# for Bb. Naturals and spellings outside the tables (Cb, E#) have none.
func (n Note) Enharmonic() (Note, error) {
	c := n.Chromatic()
	var other Note
	switch n {
	case sharpTable[c]:
		other = flatTable[c]
	case flatTable[c]:
		other = sharpTable[c]
	default:
		return Note{}, &NoEnharmonicEquivalentError{Note: n}
	}
	if other == n {
		return Note{}, &NoEnharmonicEquivalentError{Note: n}
	}
	return other, nil
}

// String renders the note for display, with unicode accidentals.
func (n Note) String() string {
	switch n.Accidental {
	case Flat:
		return string(n.Letter) + FlatGlyph
	case Sharp:
		return string(n.Letter) + SharpGlyph
	default:
		return string(n.Letter)
	}
}

// ASCII renders the canonical internal spelling, e.g. "Bb".
func (n Note) ASCII() string {
	switch n.Accidental {
	case Flat:
		return string(n.Letter) + "b"
	case Sharp:
		return string(n.Letter) + "#"
	default:
		return string(n.Letter)
	}
}

var (
	toUnicode   = strings.NewReplacer("b", FlatGlyph, "#", SharpGlyph)
	fromUnicode = strings.NewReplacer(FlatGlyph, "b", SharpGlyph, "#")
)

// ToUnicode swaps ASCII accidental characters for their glyphs across a whole
// string. It is meant for chord quality text like "7#9", where every b or #
// is an accidental.
func ToUnicode(s string) string {
	return toUnicode.Replace(s)
}

// FromUnicode is the inverse of ToUnicode, yielding canonical ASCII.
func FromUnicode(s string) string {
	return fromUnicode.Replace(s)
}
