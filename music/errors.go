package music

import "fmt"

// InvalidNoteError reports text that cannot be read as a note spelling.
type InvalidNoteError struct {
	Text string
}

func (e *InvalidNoteError) Error() string {
	return fmt.Sprintf("invalid note %q", e.Text)
}

// NoEnharmonicEquivalentError reports a note whose pitch class has no
// alternate spelling in the lookup tables.
type NoEnharmonicEquivalentError struct {
	Note Note
}

func (e *NoEnharmonicEquivalentError) Error() string {
	return fmt.Sprintf("%s has no enharmonic equivalent", e.Note.ASCII())
}

// UnsupportedIntervalError reports a half-step count outside the range the
// interval table covers.
type UnsupportedIntervalError struct {
	HalfSteps int
}

func (e *UnsupportedIntervalError) Error() string {
	return fmt.Sprintf("no interval spans %d half steps", e.HalfSteps)
}

// UnrealizableKeyError reports a root/mode pair whose diatonic scale cannot
// be spelled with a single accidental family. Suggestion, when non-nil, is an
// enharmonic root that does realize.
type UnrealizableKeyError struct {
	Root       Note
	Mode       Mode
	Suggestion *Note
}

func (e *UnrealizableKeyError) Error() string {
	if e.Suggestion != nil {
		return fmt.Sprintf("key %s %s is not realizable; use %s",
			e.Root.ASCII(), e.Mode.Name, e.Suggestion.ASCII())
	}
	return fmt.Sprintf("key %s %s is not realizable", e.Root.ASCII(), e.Mode.Name)
}

// NoRelativeModeError reports a mode that carries no Ionian interval, so no
// relative major or minor can be computed from it.
type NoRelativeModeError struct {
	Mode Mode
}

func (e *NoRelativeModeError) Error() string {
	return fmt.Sprintf("mode %q has no relative major/minor", e.Mode.Name)
}

// NoValidSpellingError reports a pitch class none of whose table spellings
// yields a realizable key. No registry mode can trigger it; it guards the
// engine against future mode additions.
type NoValidSpellingError struct {
	Chromatic int
	Mode      Mode
}

func (e *NoValidSpellingError) Error() string {
	return fmt.Sprintf("no spelling of pitch class %d realizes a %s key",
		e.Chromatic, e.Mode.Name)
}
