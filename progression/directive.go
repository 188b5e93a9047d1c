// Package progression parses chord-chart markup like "[C:2m][F]{2[G7]}/"
// into a directive tree and renders trees back to canonical text.
package progression

import (
	"fmt"
	"strings"

	"github.com/jsphweid/leadsheet/chord"
)

// Unit is a duration unit: measures, beats, or half-beats.
type Unit byte

const (
	Measure  Unit = 'm'
	Beat     Unit = 'b'
	HalfBeat Unit = 'h'
)

// Duration is one count/unit pair. A chord's duration is a list of pairs
// whose slot counts add up; "1m2b" is one measure plus two beats.
type Duration struct {
	Count int
	Unit  Unit
}

func (d Duration) String() string {
	return fmt.Sprintf("%d%c", d.Count, d.Unit)
}

// DefaultDuration is what an undecorated chord gets: one measure.
func DefaultDuration() []Duration {
	return []Duration{{Count: 1, Unit: Measure}}
}

// Slots sums a duration list in subdivision slots. A beat is two slots and a
// half-beat one; a measure's slot count comes from the time signature, which
// is why it is a parameter.
func Slots(durs []Duration, measureSubdivisions int) int {
	total := 0
	for _, d := range durs {
		switch d.Unit {
		case Measure:
			total += d.Count * measureSubdivisions
		case Beat:
			total += d.Count * 2
		case HalfBeat:
			total += d.Count
		}
	}
	return total
}

type GroupKind int

const (
	RepeatGroup GroupKind = iota
	SuffixGroup
)

// Directive is one node of a parsed progression: a chord, a group, or a row
// break.
type Directive interface {
	directive()
}

type ChordDirective struct {
	Chord    chord.Chord
	Duration []Duration
}

type GroupDirective struct {
	Kind  GroupKind
	Label string
	Body  []Directive
}

type RowBreak struct{}

func (ChordDirective) directive() {}
func (GroupDirective) directive() {}
func (RowBreak) directive()       {}

// Walk applies fn to every chord directive, depth first, stopping at the
// first error. fn gets a pointer so it can rewrite the directive in place.
func Walk(nodes []Directive, fn func(*ChordDirective) error) error {
	for i := range nodes {
		switch d := nodes[i].(type) {
		case ChordDirective:
			if err := fn(&d); err != nil {
				return err
			}
			nodes[i] = d
		case GroupDirective:
			if err := Walk(d.Body, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func isDefaultDuration(durs []Duration) bool {
	return len(durs) == 1 && durs[0] == Duration{Count: 1, Unit: Measure}
}

// Render writes a tree back out as canonical ASCII markup. Parsing the
// result reproduces the tree; default one-measure durations stay implicit.
func Render(nodes []Directive) string {
	var b strings.Builder
	for _, node := range nodes {
		switch d := node.(type) {
		case ChordDirective:
			b.WriteByte('[')
			b.WriteString(d.Chord.ASCII())
			if !isDefaultDuration(d.Duration) {
				b.WriteByte(':')
				for _, dur := range d.Duration {
					b.WriteString(dur.String())
				}
			}
			b.WriteByte(']')
		case GroupDirective:
			opener, closer := byte('{'), byte('}')
			if d.Kind == SuffixGroup {
				opener, closer = '(', ')'
			}
			b.WriteByte(opener)
			b.WriteString(d.Label)
			b.WriteString(Render(d.Body))
			b.WriteByte(closer)
		case RowBreak:
			b.WriteByte('/')
		}
	}
	return b.String()
}
