// Package midi renders songs to standard MIDI files, one track per
// progression. Chord symbols map to block voicings around middle C; the
// mapping is best effort, since chord quality text is open ended.
package midi

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/leadsheet/chord"
	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/music"
	"github.com/jsphweid/leadsheet/progression"
	"github.com/jsphweid/leadsheet/song"
)

const ticksPerQuarter = 960

// A subdivision slot is an eighth note in every supported meter.
const ticksPerSlot = ticksPerQuarter / 2

const (
	channel          = 0
	chordVelocity    = 80
	optionalVelocity = 48
	rootBase         = 60 // C4
	bassBase         = 48 // octave below the chord
)

func midiKey(n music.Note, base uint8) uint8 {
	return base + uint8((n.Chromatic()+9)%12)
}

// intervals maps a chord quality to semitone offsets from the root.
// Unrecognized text falls back to a plain major triad.
func intervals(spec string) []uint8 {
	notes := []uint8{0, 4, 7}
	rest := spec
	switch {
	case strings.HasPrefix(spec, "dim"):
		notes = []uint8{0, 3, 6}
		rest = spec[3:]
	case strings.HasPrefix(spec, "aug"):
		notes = []uint8{0, 4, 8}
		rest = spec[3:]
	case strings.HasPrefix(spec, "sus2"):
		notes = []uint8{0, 2, 7}
		rest = spec[4:]
	case strings.HasPrefix(spec, "sus4"), strings.HasPrefix(spec, "sus"):
		notes = []uint8{0, 5, 7}
		rest = strings.TrimPrefix(strings.TrimPrefix(spec, "sus4"), "sus")
	case strings.HasPrefix(spec, "min"):
		notes = []uint8{0, 3, 7}
		rest = spec[3:]
	case strings.HasPrefix(spec, "-"):
		notes = []uint8{0, 3, 7}
		rest = spec[1:]
	case strings.HasPrefix(spec, "m") && !strings.HasPrefix(spec, "maj"):
		notes = []uint8{0, 3, 7}
		rest = spec[1:]
	}

	if strings.Contains(rest, "b5") {
		for i, n := range notes {
			if n == 7 {
				notes[i] = 6
			}
		}
		rest = strings.ReplaceAll(rest, "b5", "")
	}
	if strings.Contains(rest, "#5") {
		for i, n := range notes {
			if n == 7 {
				notes[i] = 8
			}
		}
		rest = strings.ReplaceAll(rest, "#5", "")
	}
	if strings.Contains(rest, "maj7") {
		notes = append(notes, 11)
		rest = strings.ReplaceAll(rest, "maj7", "")
	}
	if strings.Contains(rest, "13") {
		notes = append(notes, 21)
		rest = strings.ReplaceAll(rest, "13", "")
	}
	if strings.Contains(rest, "11") {
		notes = append(notes, 17)
		rest = strings.ReplaceAll(rest, "11", "")
	}
	if strings.Contains(rest, "9") {
		notes = append(notes, 14)
		rest = strings.ReplaceAll(rest, "9", "")
	}
	if strings.Contains(rest, "7") {
		notes = append(notes, 10)
		rest = strings.ReplaceAll(rest, "7", "")
	}
	if strings.Contains(rest, "6") {
		notes = append(notes, 9)
	}
	return notes
}

// Notes lists the MIDI key numbers a chord sounds, bass first. Rests and
// riffs sound nothing.
func Notes(c chord.Chord) []uint8 {
	if c.Kind != chord.KindPitched {
		return nil
	}
	var res []uint8
	if c.HasBass {
		res = append(res, midiKey(c.Bass, bassBase))
	}
	root := midiKey(c.Root, rootBase)
	for _, iv := range intervals(c.Spec) {
		res = append(res, root+iv)
	}
	return res
}

type trackWriter struct {
	track        smf.Track
	subdivisions int
	carry        uint32
}

func (w *trackWriter) sequence(nodes []progression.Directive) {
	for _, node := range nodes {
		switch d := node.(type) {
		case progression.ChordDirective:
			w.chord(d)
		case progression.GroupDirective:
			times := 1
			if d.Kind == progression.RepeatGroup {
				if n, err := strconv.Atoi(d.Label); err == nil && n > 1 {
					times = n
				}
			}
			for i := 0; i < times; i++ {
				w.sequence(d.Body)
			}
		}
	}
}

func (w *trackWriter) chord(d progression.ChordDirective) {
	ticks := uint32(progression.Slots(d.Duration, w.subdivisions)) * ticksPerSlot
	notes := Notes(d.Chord)
	if len(notes) == 0 {
		if d.Chord.Kind == chord.KindRiff {
			w.track.Add(w.carry, smf.MetaText("riff"))
			w.carry = 0
		}
		w.carry += ticks
		return
	}
	vel := uint8(chordVelocity)
	if d.Chord.Optional {
		vel = optionalVelocity
	}
	delta := w.carry
	w.carry = 0
	for _, key := range notes {
		w.track.Add(delta, midi.NoteOn(channel, key, vel))
		delta = 0
	}
	delta = ticks
	for _, key := range notes {
		w.track.Add(delta, midi.NoteOff(channel, key))
		delta = 0
	}
}

// Export builds a standard MIDI file for the song: a conductor track with
// tempo and meter, then one track per progression. Repeat groups with a
// numeric label play that many times.
func Export(s *song.Song, tempoBPM float64) *smf.SMF {
	if tempoBPM <= 0 {
		tempoBPM = constants.DefaultTempoBPM
	}
	file := smf.New()
	file.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var conductor smf.Track
	conductor.Add(0, smf.MetaTrackSequenceName(s.Title))
	conductor.Add(0, smf.MetaTempo(tempoBPM))
	conductor.Add(0, smf.MetaMeter(uint8(s.Time.Count), uint8(s.Time.Unit)))
	conductor.Close(0)
	file.Add(conductor)

	for _, p := range s.Progressions {
		w := trackWriter{subdivisions: s.Time.Subdivisions()}
		w.track.Add(0, smf.MetaTrackSequenceName(p.Name))
		w.sequence(p.Directives)
		w.track.Close(w.carry)
		file.Add(w.track)
	}
	return file
}

// WriteFile renders the song to a .mid file at path.
func WriteFile(s *song.Song, tempoBPM float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating midi file: %w", err)
	}
	defer f.Close()
	if _, err := Export(s, tempoBPM).WriteTo(f); err != nil {
		return fmt.Errorf("writing midi file: %w", err)
	}
	return nil
}
