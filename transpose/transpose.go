// Package transpose rewrites chords from one key into another. All
// validation happens when a Transposer is constructed; applying one cannot
// fail and never touches quality text.
package transpose

import (
	"github.com/jsphweid/leadsheet/chord"
	"github.com/jsphweid/leadsheet/music"
	"github.com/jsphweid/leadsheet/progression"
)

// Transposer carries a validated source/target key pair. Re-spelling goes
// through the target key's preference table, so diatonic notes come out
// letter-consistent and chromatic notes follow the key's accidental family.
type Transposer struct {
	from      music.Key
	to        music.Key
	halfSteps int
	interval  music.Interval
}

func newTransposer(from, to music.Key) *Transposer {
	ivl := music.IntervalBetween(from.Root(), to.Root())
	return &Transposer{
		from:      from,
		to:        to,
		halfSteps: ivl.HalfSteps(),
		interval:  ivl,
	}
}

// ByRoot targets an explicit root. The root must realize a key in the
// source's mode; the failure is the key's own, suggestion included.
func ByRoot(from music.Key, root music.Note) (*Transposer, error) {
	to, err := from.ToRoot(root)
	if err != nil {
		return nil, err
	}
	return newTransposer(from, to), nil
}

// ByHalfSteps targets a pitch-class delta, negatives welcome. Whole
// octaves keep the source key untouched; otherwise the target spelling is
// whichever table candidate realizes first, the source key's accidental
// family leading, so C major moves up three to Eb, not D#.
func ByHalfSteps(from music.Key, n int) (*Transposer, error) {
	c := ((from.Root().Chromatic()+n)%12 + 12) % 12
	// SpellingsAt cannot hand back a table-external tonic like Cb
	if c == from.Root().Chromatic() {
		return newTransposer(from, from), nil
	}
	cands := music.SpellingsAt(c)
	if from.PrefersFlats() && len(cands) == 2 {
		cands[0], cands[1] = cands[1], cands[0]
	}
	for _, cand := range cands {
		if to, err := from.ToRoot(cand); err == nil {
			return newTransposer(from, to), nil
		}
	}
	return nil, &music.NoValidSpellingError{Chromatic: c, Mode: from.Mode()}
}

func (t *Transposer) From() music.Key { return t.from }
func (t *Transposer) To() music.Key   { return t.to }

func (t *Transposer) Interval() music.Interval { return t.interval }
func (t *Transposer) HalfSteps() int           { return t.halfSteps }

// Chord rewrites a chord's root and bass in place. Rest and riff sentinels
// pass through, and a same-key transposer is an exact no-op, original
// spelling kept whatever the key's own preference would be.
func (t *Transposer) Chord(c *chord.Chord) {
	if c.Kind != chord.KindPitched || t.from == t.to {
		return
	}
	c.Root = t.to.Spelling(c.Root.Chromatic() + t.halfSteps)
	if c.HasBass {
		c.Bass = t.to.Spelling(c.Bass.Chromatic() + t.halfSteps)
	}
}

// Progression rewrites every chord directive in the tree.
func (t *Transposer) Progression(nodes []progression.Directive) {
	_ = progression.Walk(nodes, func(d *progression.ChordDirective) error {
		t.Chord(&d.Chord)
		return nil
	})
}
