// Package layout flattens a parsed progression into rows of measures for
// rendering. It knows nothing about output formats; it only decides where
// chords, bar symbols, and row breaks land.
package layout

import (
	"github.com/jsphweid/leadsheet/chord"
	"github.com/jsphweid/leadsheet/progression"
)

// Bar symbols in strength order. A stronger symbol never gets overwritten by
// a weaker one.
type Bar int

const (
	BarSingle Bar = iota
	BarDouble
	BarSectionOpen
	BarSectionClose
	BarRepeatOpen
	BarRepeatClose
)

// Glyph renders the bar as a unicode music symbol.
func (b Bar) Glyph() string {
	switch b {
	case BarDouble:
		return "\U0001d101"
	case BarSectionOpen:
		return "\U0001d103"
	case BarSectionClose:
		return "\U0001d102"
	case BarRepeatOpen:
		return "\U0001d106"
	case BarRepeatClose:
		return "\U0001d107"
	default:
		return "\U0001d100"
	}
}

// Cell is one subdivision slot. A label appears where a chord is struck and
// again wherever a held chord crosses into a new measure; Sounding is true
// only at the strike.
type Cell struct {
	Chord    chord.Chord
	HasChord bool
	Sounding bool
}

// Measure carries its boundary symbols, the labels that ride on them
// (repeat counts, ending names), and exactly one Cell per subdivision.
type Measure struct {
	StartBar      Bar
	EndBar        Bar
	StartNote     string
	EndNote       string
	Cells         []Cell
	rowBreakAfter bool
}

// Grid is the fully rowed result.
type Grid struct {
	Rows         [][]Measure
	Subdivisions int
}

// MaxMeasuresPerRow is the uncondensed row width; condensing doubles it.
const MaxMeasuresPerRow = 4

type Options struct {
	CondenseMeasures bool
}

// Build lays out a directive tree against a measure size in subdivision
// slots (8 for 4/4; see song.TimeSignature).
func Build(nodes []progression.Directive, subdivisions int, opts Options) Grid {
	measures := convert(nodes, subdivisions)
	if len(measures) > 0 {
		upgrade(&measures[0].StartBar, BarSectionOpen)
		upgrade(&measures[len(measures)-1].EndBar, BarSectionClose)
	}
	width := MaxMeasuresPerRow
	if opts.CondenseMeasures {
		width *= 2
	}
	return Grid{Rows: makeRows(measures, width), Subdivisions: subdivisions}
}

func upgrade(b *Bar, to Bar) {
	if to > *b {
		*b = to
	}
}

type builder struct {
	subdivisions int
	measures     []Measure
	cursor       int
}

func convert(nodes []progression.Directive, subdivisions int) []Measure {
	b := &builder{subdivisions: subdivisions}
	b.sequence(nodes)
	b.pad()
	return b.measures
}

func (b *builder) sequence(nodes []progression.Directive) {
	for _, node := range nodes {
		switch d := node.(type) {
		case progression.RowBreak:
			if len(b.measures) > 0 {
				b.measures[len(b.measures)-1].rowBreakAfter = true
			}
		case progression.GroupDirective:
			b.group(d)
		case progression.ChordDirective:
			b.chord(d)
		}
	}
}

// group closes out any partial measure, lays the body out as its own run of
// measures, and marks its boundary bars: repeat signs bracket the body with
// the label as an end note, suffix endings open on a double bar with the
// label as a start note and close on a section bar, so the row ends there.
func (b *builder) group(d progression.GroupDirective) {
	b.pad()
	b.cursor = 0
	start := len(b.measures)
	b.sequence(d.Body)
	b.pad()
	b.cursor = 0
	if len(b.measures) == start {
		return
	}
	first, last := &b.measures[start], &b.measures[len(b.measures)-1]
	switch d.Kind {
	case progression.RepeatGroup:
		upgrade(&first.StartBar, BarRepeatOpen)
		upgrade(&last.EndBar, BarRepeatClose)
		last.EndNote = d.Label
	case progression.SuffixGroup:
		upgrade(&first.StartBar, BarDouble)
		upgrade(&last.EndBar, BarSectionClose)
		first.StartNote = d.Label
	}
}

// chord advances slot by slot. A duration that spills past a barline starts
// the next measure with the label restated, so the reader sees what is still
// sounding on every row.
func (b *builder) chord(d progression.ChordDirective) {
	total := progression.Slots(d.Duration, b.subdivisions)
	for i := 0; i < total; i++ {
		switch {
		case b.cursor%b.subdivisions == 0:
			cells := make([]Cell, 0, b.subdivisions)
			cells = append(cells, Cell{Chord: d.Chord, HasChord: true, Sounding: i == 0})
			b.measures = append(b.measures, Measure{Cells: cells})
			b.cursor = 0
		case i == 0:
			b.cleanLastLabel()
			m := &b.measures[len(b.measures)-1]
			m.Cells = append(m.Cells, Cell{Chord: d.Chord, HasChord: true, Sounding: true})
		default:
			m := &b.measures[len(b.measures)-1]
			m.Cells = append(m.Cells, Cell{})
		}
		b.cursor++
	}
}

// cleanLastLabel blanks a restated label left dangling one slot past a
// barline when a new chord lands right after it. The restatement reads the
// same as the label before it, so keeping both would print the chord twice
// in a row.
func (b *builder) cleanLastLabel() {
	m := &b.measures[len(b.measures)-1]
	last := &m.Cells[len(m.Cells)-1]
	if !last.HasChord {
		return
	}
	if prev, ok := b.previousLabel(); ok && prev == last.Chord {
		*last = Cell{}
	}
}

// previousLabel walks backward from the second-to-last cell, through earlier
// measures, to the nearest labeled cell.
func (b *builder) previousLabel() (chord.Chord, bool) {
	mi := len(b.measures) - 1
	ci := len(b.measures[mi].Cells) - 2
	for mi >= 0 {
		for ; ci >= 0; ci-- {
			if c := b.measures[mi].Cells[ci]; c.HasChord {
				return c.Chord, true
			}
		}
		mi--
		if mi >= 0 {
			ci = len(b.measures[mi].Cells) - 1
		}
	}
	return chord.Chord{}, false
}

// pad fills the trailing partial measure with continuation cells so every
// measure comes out exactly full.
func (b *builder) pad() {
	if len(b.measures) == 0 {
		return
	}
	m := &b.measures[len(b.measures)-1]
	for len(m.Cells) < b.subdivisions {
		m.Cells = append(m.Cells, Cell{})
	}
}

// makeRows breaks the measure run into rows: at the width limit, after any
// measure closing a repeat, and after explicit row-break directives.
func makeRows(measures []Measure, width int) [][]Measure {
	var rows [][]Measure
	lastBreak := 0
	for i := range measures {
		if i == 0 || i-lastBreak == width ||
			measures[i-1].EndBar == BarRepeatClose ||
			measures[i-1].EndBar == BarSectionClose ||
			measures[i-1].rowBreakAfter {
			rows = append(rows, nil)
			lastBreak = i
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], measures[i])
	}
	return rows
}
