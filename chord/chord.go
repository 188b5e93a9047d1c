// Package chord models the chord symbols that appear in progression markup:
// a root note, free quality text, and an optional bass note, plus the rest
// and riff sentinels.
package chord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/leadsheet/music"
)

type Kind int

const (
	KindPitched Kind = iota
	KindRest
	KindRiff
)

// Chord is stored ASCII-canonical. Quality text is free-form and never
// validated against a vocabulary; transposition moves Root and Bass and
// leaves Spec alone. Rest and riff sentinels carry no pitch content.
type Chord struct {
	Root     music.Note
	Spec     string
	Bass     music.Note
	HasBass  bool
	Optional bool
	Kind     Kind
}

// Rest returns the silent-measure sentinel.
func Rest() Chord { return Chord{Kind: KindRest} }

// Riff returns the written-out-elsewhere sentinel.
func Riff() Chord { return Chord{Kind: KindRiff} }

// splitRoot peels the longest note spelling off the front of the text,
// trying two characters before one so "Bb7" reads as Bb.
func splitRoot(text string) (music.Note, string, error) {
	if len(text) >= 2 {
		if n, err := music.ParseNote(text[:2]); err == nil {
			return n, text[2:], nil
		}
	}
	if len(text) >= 1 {
		if n, err := music.ParseNote(text[:1]); err == nil {
			return n, text[1:], nil
		}
	}
	return music.Note{}, "", &music.InvalidNoteError{Text: text}
}

// Parse reads a chord body: optional leading "?", root, quality text, and at
// most one "/bass". Unicode accidentals are accepted anywhere and normalized.
// The reserved words rest and riff are the progression parser's business,
// not Parse's; they reach here only as invalid notes.
func Parse(s string) (Chord, error) {
	text := music.FromUnicode(s)
	var c Chord
	if strings.HasPrefix(text, "?") {
		c.Optional = true
		text = text[1:]
	}
	if text == "" {
		return Chord{}, errors.New("empty chord")
	}
	root, remainder, err := splitRoot(text)
	if err != nil {
		return Chord{}, err
	}
	c.Root = root

	parts := strings.Split(remainder, "/")
	switch len(parts) {
	case 1:
		c.Spec = parts[0]
	case 2:
		c.Spec = parts[0]
		if parts[1] == "" {
			return Chord{}, errors.New(`"/" must be followed by a bass note`)
		}
		bass, err := music.ParseNote(parts[1])
		if err != nil {
			return Chord{}, fmt.Errorf("bass note: %w", err)
		}
		c.Bass = bass
		c.HasBass = true
	default:
		return Chord{}, errors.New(`chords can only have one "/"`)
	}
	return c, nil
}

// ASCII renders the canonical markup body, the exact text Parse accepts.
func (c Chord) ASCII() string {
	switch c.Kind {
	case KindRest:
		return "rest"
	case KindRiff:
		return "riff"
	}
	var b strings.Builder
	if c.Optional {
		b.WriteString("?")
	}
	b.WriteString(c.Root.ASCII())
	b.WriteString(c.Spec)
	if c.HasBass {
		b.WriteString("/")
		b.WriteString(c.Bass.ASCII())
	}
	return b.String()
}

// String renders for display: accidental glyphs throughout, optional chords
// parenthesized.
func (c Chord) String() string {
	switch c.Kind {
	case KindRest:
		return "rest"
	case KindRiff:
		return "riff"
	}
	text := c.Root.String() + music.ToUnicode(c.Spec)
	if c.HasBass {
		text += "/" + c.Bass.String()
	}
	if c.Optional {
		return "(" + text + ")"
	}
	return text
}
