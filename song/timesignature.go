package song

import (
	"fmt"
	"regexp"
	"strconv"
)

var timeSignatureRE = regexp.MustCompile(`^(\d+)/([48])$`)

// TimeSignature is a simple count/unit meter. Only quarter and eighth note
// units are supported.
type TimeSignature struct {
	Count int
	Unit  int
}

// DefaultTimeSignature is 4/4.
func DefaultTimeSignature() TimeSignature { return TimeSignature{Count: 4, Unit: 4} }

// ParseTimeSignature reads strings like "4/4", "3/4", or "6/8".
func ParseTimeSignature(s string) (TimeSignature, error) {
	m := timeSignatureRE.FindStringSubmatch(s)
	if m == nil {
		return TimeSignature{}, fmt.Errorf("malformed time signature %q: want count/unit with unit 4 or 8", s)
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 {
		return TimeSignature{}, fmt.Errorf("malformed time signature %q: count must be at least 1", s)
	}
	unit, _ := strconv.Atoi(m[2])
	return TimeSignature{Count: count, Unit: unit}, nil
}

// Subdivisions is the number of half-beat slots in one measure. 4/4 has 8,
// 6/8 has 6.
func (t TimeSignature) Subdivisions() int { return t.Count * 8 / t.Unit }

func (t TimeSignature) String() string { return fmt.Sprintf("%d/%d", t.Count, t.Unit) }
