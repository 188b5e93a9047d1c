package music

import (
	"fmt"
	"strings"
)

// Key is a realizable root/mode pair. Construction derives the diatonic
// scale letter by letter and fails unless every forced accidental stays
// single and within one accidental family, so an unrealizable key (D# major)
// cannot exist as a value. Obtain keys via NewKey or ParseKey; the zero Key
// is not valid.
type Key struct {
	root        Note
	mode        Mode
	scale       [7]Note
	preferFlats bool
}

func nextLetter(l byte) byte {
	if l == 'G' {
		return 'A'
	}
	return l + 1
}

// deriveScale walks the mode's steps assigning one letter per degree (G
// wraps to A) and computing the accidental each chromatic target forces on
// its letter. It reports failure when a degree needs a double accidental or
// an accidental outside the requested family.
func deriveScale(root Note, mode Mode, family Accidental) ([7]Note, bool) {
	var scale [7]Note
	letter := root.Letter
	chromatic := root.Chromatic()
	for i := 0; i < 7; i++ {
		base := naturalIndex[letter]
		var acc Accidental
		switch (chromatic - base + 12) % 12 {
		case 0:
			acc = Natural
		case 1:
			acc = Sharp
		case 11:
			acc = Flat
		default:
			return scale, false
		}
		if acc != Natural && acc != family {
			return scale, false
		}
		scale[i] = Note{Letter: letter, Accidental: acc}
		letter = nextLetter(letter)
		chromatic = (chromatic + mode.Steps[i]) % 12
	}
	return scale, true
}

// NewKey validates and constructs a key, trying the sharp family before the
// flat family. When the root's enharmonic equivalent would realize instead,
// the error says so.
func NewKey(root Note, mode Mode) (Key, error) {
	if scale, ok := deriveScale(root, mode, Sharp); ok {
		return Key{root: root, mode: mode, scale: scale}, nil
	}
	if scale, ok := deriveScale(root, mode, Flat); ok {
		return Key{root: root, mode: mode, scale: scale, preferFlats: true}, nil
	}
	kerr := &UnrealizableKeyError{Root: root, Mode: mode}
	if enh, err := root.Enharmonic(); err == nil {
		if _, err := NewKey(enh, mode); err == nil {
			kerr.Suggestion = &enh
		}
	}
	return Key{}, kerr
}

// ParseKey reads a root note followed by an optional mode shorthand or name:
// "C", "Eb-", "F#m", "D dorian".
func ParseKey(s string) (Key, error) {
	text := strings.TrimSpace(FromUnicode(s))
	if text == "" {
		return Key{}, &InvalidNoteError{Text: s}
	}
	var root Note
	rest := ""
	parsed := false
	if len(text) >= 2 {
		if n, err := ParseNote(text[:2]); err == nil {
			root, rest, parsed = n, text[2:], true
		}
	}
	if !parsed {
		n, err := ParseNote(text[:1])
		if err != nil {
			return Key{}, err
		}
		root, rest = n, text[1:]
	}
	mode, ok := ModeByName(rest)
	if !ok {
		return Key{}, fmt.Errorf("key %q: unknown mode %q", s, strings.TrimSpace(rest))
	}
	return NewKey(root, mode)
}

// MustParseKey is ParseKey for static key strings; it panics on bad input.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) Root() Note { return k.root }
func (k Key) Mode() Mode { return k.mode }

// Scale returns the seven diatonic notes, tonic first.
func (k Key) Scale() [7]Note { return k.scale }

// PrefersFlats reports the key's accidental family: true when the scale
// carries any flat, false for sharp or all-natural scales.
func (k Key) PrefersFlats() bool { return k.preferFlats }

// Spelling returns the key's preferred spelling of a pitch class: the
// scale's own note for diatonic classes, the family table entry otherwise.
func (k Key) Spelling(chromatic int) Note {
	c := ((chromatic % 12) + 12) % 12
	for _, n := range k.scale {
		if n.Chromatic() == c {
			return n
		}
	}
	if k.preferFlats {
		return flatTable[c]
	}
	return sharpTable[c]
}

// ToRoot rebuilds the key on a new root, same mode.
func (k Key) ToRoot(root Note) (Key, error) {
	return NewKey(root, k.mode)
}

// keyAt realizes a key of the given mode at a pitch class, trying the
// spelling from k's own accidental family first.
func (k Key) keyAt(chromatic int, mode Mode) (Key, error) {
	cands := SpellingsAt(chromatic)
	if k.preferFlats && len(cands) == 2 {
		cands[0], cands[1] = cands[1], cands[0]
	}
	for _, cand := range cands {
		if key, err := NewKey(cand, mode); err == nil {
			return key, nil
		}
	}
	return Key{}, &NoValidSpellingError{Chromatic: chromatic, Mode: mode}
}

// RelativeMajor returns the major key sharing this key's notes, computed
// from the mode's Ionian interval (A minor yields C major).
func (k Key) RelativeMajor() (Key, error) {
	offset, ok := k.mode.ionianOffset()
	if !ok {
		return Key{}, &NoRelativeModeError{Mode: k.mode}
	}
	return k.keyAt((k.root.Chromatic()-offset+12)%12, Major)
}

// RelativeMinor returns the minor key sharing this key's notes.
func (k Key) RelativeMinor() (Key, error) {
	maj, err := k.RelativeMajor()
	if err != nil {
		return Key{}, err
	}
	minorOffset, _ := Minor.ionianOffset()
	return k.keyAt((maj.root.Chromatic()+minorOffset)%12, Minor)
}

// String renders root plus mode shorthand: "C", "E♭-", "D dorian".
func (k Key) String() string { return k.root.String() + k.mode.Shorthand() }

// ASCII renders the canonical form: "C", "Eb-", "D dorian".
func (k Key) ASCII() string { return k.root.ASCII() + k.mode.Shorthand() }

// SpellingsAt lists the table spellings of a pitch class, sharp table entry
// first; a single entry where both tables agree.
func SpellingsAt(chromatic int) []Note {
	c := ((chromatic % 12) + 12) % 12
	if sharpTable[c] == flatTable[c] {
		return []Note{sharpTable[c]}
	}
	return []Note{sharpTable[c], flatTable[c]}
}

// TransposableRoots lists every table spelling whose key in the given mode
// is realizable, in chromatic order. Classes where both spellings realize
// contribute both (F# and Gb major are each on the menu).
func TransposableRoots(mode Mode) []Note {
	var res []Note
	for c := 0; c < 12; c++ {
		for _, cand := range SpellingsAt(c) {
			if _, err := NewKey(cand, mode); err == nil {
				res = append(res, cand)
			}
		}
	}
	return res
}
