package music

import "strings"

// Mode is a scale shape: seven half-step increments summing to an octave.
// IonianInterval is the major-scale degree the mode starts on (Ionian 1,
// Aeolian 6); it drives relative-key computation. Two modes are the same
// scale shape iff their steps match, whatever they are named.
type Mode struct {
	Name           string
	Steps          [7]int
	IonianInterval int
}

var (
	Major      = Mode{Name: "major", Steps: [7]int{2, 2, 1, 2, 2, 2, 1}, IonianInterval: 1}
	Dorian     = Mode{Name: "dorian", Steps: [7]int{2, 1, 2, 2, 2, 1, 2}, IonianInterval: 2}
	Phrygian   = Mode{Name: "phrygian", Steps: [7]int{1, 2, 2, 2, 1, 2, 2}, IonianInterval: 3}
	Lydian     = Mode{Name: "lydian", Steps: [7]int{2, 2, 2, 1, 2, 2, 1}, IonianInterval: 4}
	Mixolydian = Mode{Name: "mixolydian", Steps: [7]int{2, 2, 1, 2, 2, 1, 2}, IonianInterval: 5}
	Minor      = Mode{Name: "minor", Steps: [7]int{2, 1, 2, 2, 1, 2, 2}, IonianInterval: 6}
	Locrian    = Mode{Name: "locrian", Steps: [7]int{1, 2, 2, 1, 2, 2, 2}, IonianInterval: 7}
)

// Modes lists the registry in Ionian-interval order.
var Modes = []Mode{Major, Dorian, Phrygian, Lydian, Mixolydian, Minor, Locrian}

var modeNames = map[string]Mode{
	"major": Major, "ionian": Major, "maj": Major,
	"dorian": Dorian, "dor": Dorian,
	"phrygian": Phrygian,
	"lydian":   Lydian,
	"mixolydian": Mixolydian, "mixo": Mixolydian,
	"minor": Minor, "aeolian": Minor, "min": Minor, "m": Minor, "-": Minor,
	"locrian": Locrian,
}

func init() {
	for _, m := range Modes {
		var sum int
		for _, s := range m.Steps {
			sum += s
		}
		if sum != 12 {
			panic("music: mode " + m.Name + " steps do not sum to an octave")
		}
	}
}

// ModeByName resolves a mode name or shorthand ("minor", "aeolian", "m",
// "-"). The empty string is major, matching how keys print.
func ModeByName(name string) (Mode, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Major, true
	}
	m, ok := modeNames[name]
	return m, ok
}

// Equal compares scale shapes, ignoring names.
func (m Mode) Equal(o Mode) bool {
	return m.Steps == o.Steps
}

// Shorthand is the compact suffix keys print with: "" for major, "-" for
// minor, the spelled-out name for everything else.
func (m Mode) Shorthand() string {
	switch {
	case m.Equal(Major):
		return ""
	case m.Equal(Minor):
		return "-"
	default:
		return " " + m.Name
	}
}

// ionianOffset is how many half steps the mode's tonic sits above its
// relative major's tonic.
func (m Mode) ionianOffset() (int, bool) {
	if m.IonianInterval < 1 || m.IonianInterval > 7 {
		return 0, false
	}
	var offset int
	for i := 0; i < m.IonianInterval-1; i++ {
		offset += Major.Steps[i]
	}
	return offset, true
}
