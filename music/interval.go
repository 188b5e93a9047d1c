package music

import "fmt"

type Quality int

const (
	Diminished Quality = iota
	MinorQuality
	PerfectQuality
	MajorQuality
	Augmented
)

func (q Quality) String() string {
	switch q {
	case Diminished:
		return "diminished"
	case MinorQuality:
		return "minor"
	case PerfectQuality:
		return "perfect"
	case MajorQuality:
		return "major"
	case Augmented:
		return "augmented"
	default:
		return "unknown"
	}
}

// Interval is a diatonic number 1-7 with a quality. The representable range
// is the single octave 0-11 half steps; the tritone always canonicalizes as
// the augmented 4th.
type Interval struct {
	Number  int
	Quality Quality
}

var canonicalIntervals = [12]Interval{
	{1, PerfectQuality},
	{2, MinorQuality},
	{2, MajorQuality},
	{3, MinorQuality},
	{3, MajorQuality},
	{4, PerfectQuality},
	{4, Augmented},
	{5, PerfectQuality},
	{6, MinorQuality},
	{6, MajorQuality},
	{7, MinorQuality},
	{7, MajorQuality},
}

// Base half-step sizes of the perfect/major form of each number.
var numberBase = [8]int{0, 0, 2, 4, 5, 7, 9, 11}

func isPerfectClass(number int) bool {
	return number == 1 || number == 4 || number == 5
}

// IntervalFromHalfSteps returns the canonical interval spanning n half steps.
func IntervalFromHalfSteps(n int) (Interval, error) {
	if n < 0 || n > 11 {
		return Interval{}, &UnsupportedIntervalError{HalfSteps: n}
	}
	return canonicalIntervals[n], nil
}

// IntervalBetween measures from one note up to another, wrapping at the
// octave, so it is defined for any pair of notes.
func IntervalBetween(from, to Note) Interval {
	n := (to.Chromatic() - from.Chromatic() + 12) % 12
	return canonicalIntervals[n]
}

// HalfSteps returns the interval's size. It resolves non-canonical but
// well-formed values too (a diminished 5th sizes like the augmented 4th).
func (i Interval) HalfSteps() int {
	if i.Number < 1 || i.Number > 7 {
		panic(fmt.Sprintf("music: interval number %d out of range", i.Number))
	}
	base := numberBase[i.Number]
	switch i.Quality {
	case MinorQuality:
		return base - 1
	case Augmented:
		return base + 1
	case Diminished:
		if isPerfectClass(i.Number) {
			return base - 1
		}
		return base - 2
	default:
		return base
	}
}

// Plus adds two intervals in half-step space. Results past the octave fail
// rather than wrap.
func (i Interval) Plus(o Interval) (Interval, error) {
	return IntervalFromHalfSteps(i.HalfSteps() + o.HalfSteps())
}

// Minus subtracts o from i, failing on negative results.
func (i Interval) Minus(o Interval) (Interval, error) {
	return IntervalFromHalfSteps(i.HalfSteps() - o.HalfSteps())
}

func (i Interval) String() string {
	return fmt.Sprintf("%s %s", i.Quality, numberName(i.Number))
}

func numberName(n int) string {
	switch n {
	case 1:
		return "unison"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
