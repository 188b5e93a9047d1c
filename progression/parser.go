package progression

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jsphweid/leadsheet/chord"
)

// Parse turns progression markup into a directive tree. Whitespace is
// stripped before the scan, so offsets in errors index the stripped text.
// Any failure aborts the whole parse; no partial tree comes back.
func Parse(src string) ([]Directive, error) {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
	if stripped == "" {
		return nil, ErrEmptyProgression
	}
	nodes, err := parseSequence(stripped, 0)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, ErrEmptyProgression
	}
	return nodes, nil
}

// parseSequence is a single left-to-right scan. base is the absolute offset
// of src's first byte, so errors inside groups still point into the full
// stripped source. lastEnd tracks where the last closed directive ended;
// any text between it and the next directive opener is garbage.
func parseSequence(src string, base int) ([]Directive, error) {
	var out []Directive
	pos := 0
	lastEnd := 0
	for pos < len(src) {
		switch src[pos] {
		case '[':
			if pos > lastEnd {
				return nil, garbage(base, src, lastEnd, pos)
			}
			end := strings.IndexByte(src[pos+1:], ']')
			if end < 0 {
				return nil, &MalformedProgressionError{
					Offset: base + pos,
					Text:   src[pos:],
					Reason: `no closing "]"`,
				}
			}
			end += pos + 1
			d, err := parseChordBody(src[pos+1:end], base+pos+1)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
			pos = end + 1
			lastEnd = pos
		case '{', '(':
			if pos > lastEnd {
				return nil, garbage(base, src, lastEnd, pos)
			}
			kind, closer := RepeatGroup, byte('}')
			if src[pos] == '(' {
				kind, closer = SuffixGroup, ')'
			}
			end := strings.IndexByte(src[pos+1:], closer)
			if end < 0 {
				return nil, &MalformedProgressionError{
					Offset: base + pos,
					Text:   src[pos:],
					Reason: fmt.Sprintf("no closing %q", string(closer)),
				}
			}
			end += pos + 1
			group, err := parseGroup(kind, src[pos+1:end], base+pos+1)
			if err != nil {
				return nil, err
			}
			out = append(out, group)
			pos = end + 1
			lastEnd = pos
		case '/':
			if pos > lastEnd {
				return nil, garbage(base, src, lastEnd, pos)
			}
			out = append(out, RowBreak{})
			pos++
			lastEnd = pos
		default:
			pos++
		}
	}
	if lastEnd < len(src) {
		return nil, garbage(base, src, lastEnd, len(src))
	}
	return out, nil
}

func garbage(base int, src string, from, to int) error {
	return &MalformedProgressionError{
		Offset: base + from,
		Text:   src[from:to],
		Reason: "text outside any directive",
	}
}

// parseGroup splits a group's span into its label (everything before the
// first nested directive opener) and its child directives. A group with no
// nested opener is all label.
func parseGroup(kind GroupKind, span string, base int) (GroupDirective, error) {
	group := GroupDirective{Kind: kind}
	idx := strings.IndexAny(span, "[{(")
	if idx < 0 {
		group.Label = span
		return group, nil
	}
	group.Label = span[:idx]
	body, err := parseSequence(span[idx:], base+idx)
	if err != nil {
		return GroupDirective{}, err
	}
	group.Body = body
	return group, nil
}

// parseChordBody reads the text between chord brackets: a reserved word or
// chord symbol, then an optional ":"-separated duration.
func parseChordBody(body string, base int) (ChordDirective, error) {
	malformed := func(reason string, err error) (ChordDirective, error) {
		return ChordDirective{}, &MalformedProgressionError{
			Offset: base,
			Text:   body,
			Reason: reason,
			err:    err,
		}
	}

	name, durText, hasDuration := strings.Cut(body, ":")
	d := ChordDirective{Duration: DefaultDuration()}
	switch name {
	case "rest":
		d.Chord = chord.Rest()
	case "riff":
		d.Chord = chord.Riff()
	default:
		c, err := chord.Parse(name)
		if err != nil {
			return malformed(err.Error(), err)
		}
		d.Chord = c
	}
	if hasDuration {
		durs, err := parseDurations(durText)
		if err != nil {
			return malformed(err.Error(), err)
		}
		d.Duration = durs
	}
	return d, nil
}

// parseDurations reads one or more count/unit pairs with nothing in between:
// "2m", "1m1b", "3h". Counts are positive integers.
func parseDurations(text string) ([]Duration, error) {
	if text == "" {
		return nil, fmt.Errorf("empty duration")
	}
	var res []Duration
	i := 0
	for i < len(text) {
		start := i
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
		}
		if start == i {
			return nil, fmt.Errorf("duration %q: expected a count at position %d", text, i)
		}
		count, err := strconv.Atoi(text[start:i])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("duration %q: bad count %q", text, text[start:i])
		}
		if i >= len(text) {
			return nil, fmt.Errorf("duration %q: count %d has no unit", text, count)
		}
		unit := Unit(text[i])
		if unit != Measure && unit != Beat && unit != HalfBeat {
			return nil, fmt.Errorf("duration %q: unknown unit %q", text, string(text[i]))
		}
		res = append(res, Duration{Count: count, Unit: unit})
		i++
	}
	return res, nil
}
