package progression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/leadsheet/chord"
)

func mustParse(t *testing.T, src string) []Directive {
	t.Helper()
	nodes, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return nodes
}

func TestParsesSingleChordWithDefaultDuration(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "[C]")
	assert.Len(nodes, 1)

	d, ok := nodes[0].(ChordDirective)
	assert.True(ok)
	assert.Equal("C", d.Chord.ASCII())
	assert.Equal(DefaultDuration(), d.Duration)
}

func TestParsesAccumulatedDurations(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "[G:1m1b]")
	d := nodes[0].(ChordDirective)
	assert.Equal([]Duration{
		{Count: 1, Unit: Measure},
		{Count: 1, Unit: Beat},
	}, d.Duration)
}

func TestParsesRepeatGroupWithLabel(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "{2[A][B7#9]}")
	assert.Len(nodes, 1)

	g, ok := nodes[0].(GroupDirective)
	assert.True(ok)
	assert.Equal(RepeatGroup, g.Kind)
	assert.Equal("2", g.Label)
	assert.Len(g.Body, 2)
	assert.Equal("A", g.Body[0].(ChordDirective).Chord.ASCII())
	assert.Equal("B7#9", g.Body[1].(ChordDirective).Chord.ASCII())
}

func TestParsesSuffixGroupsAndRowBreaks(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "[C][F]/{2[G]}(1.[D7])")
	assert.Len(nodes, 5)

	_, ok := nodes[2].(RowBreak)
	assert.True(ok)

	suffix := nodes[4].(GroupDirective)
	assert.Equal(SuffixGroup, suffix.Kind)
	assert.Equal("1.", suffix.Label)
	assert.Len(suffix.Body, 1)
}

func TestGroupsNestAcrossTypes(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "{2[A](tag[B])}")
	g := nodes[0].(GroupDirective)
	assert.Len(g.Body, 2)

	inner := g.Body[1].(GroupDirective)
	assert.Equal(SuffixGroup, inner.Kind)
	assert.Equal("tag", inner.Label)
}

func TestLabelOnlyGroupHasNoBody(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "{intro}")
	g := nodes[0].(GroupDirective)
	assert.Equal("intro", g.Label)
	assert.Empty(g.Body)
}

func TestWhitespaceIsStrippedBeforeTheScan(t *testing.T) {
	assert := assert.New(t)
	spaced := mustParse(t, " [C]\n\t[F] / [G] ")
	tight := mustParse(t, "[C][F]/[G]")
	assert.Equal(tight, spaced)
}

func TestRestAndRiffAreReservedWords(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "[rest:2m][riff][C]")

	r := nodes[0].(ChordDirective)
	assert.Equal(chord.KindRest, r.Chord.Kind)
	assert.Equal([]Duration{{Count: 2, Unit: Measure}}, r.Duration)

	f := nodes[1].(ChordDirective)
	assert.Equal(chord.KindRiff, f.Chord.Kind)
	assert.Equal(DefaultDuration(), f.Duration)
}

func TestGarbageBetweenDirectivesFails(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("[A]xyz[B]")

	var malformed *MalformedProgressionError
	assert.True(errors.As(err, &malformed))
	assert.Equal(3, malformed.Offset)
	assert.Equal("xyz", malformed.Text)
}

func TestTrailingGarbageFails(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("[A]xy")

	var malformed *MalformedProgressionError
	assert.True(errors.As(err, &malformed))
	assert.Equal(3, malformed.Offset)
	assert.Equal("xy", malformed.Text)
}

func TestGarbageOffsetsIndexTheStrippedSource(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("[A]  xyz  [B]")

	var malformed *MalformedProgressionError
	assert.True(errors.As(err, &malformed))
	assert.Equal(3, malformed.Offset)
	assert.Equal("xyz", malformed.Text)
}

func TestUnterminatedDirectivesFail(t *testing.T) {
	assert := assert.New(t)
	for src, wantOffset := range map[string]int{
		"[A":      0,
		"[C][A":   3,
		"{2[A]":   0,
		"(x[B]":   0,
		"[C]{2[A]": 3,
	} {
		_, err := Parse(src)
		var malformed *MalformedProgressionError
		assert.True(errors.As(err, &malformed), src)
		assert.Equal(wantOffset, malformed.Offset, src)
	}
}

func TestEmptyProgressionsFail(t *testing.T) {
	assert := assert.New(t)
	for _, src := range []string{"", "   ", "\n\t"} {
		_, err := Parse(src)
		assert.True(errors.Is(err, ErrEmptyProgression), "%q", src)
	}
}

func TestBadChordBodiesFailAsMalformed(t *testing.T) {
	assert := assert.New(t)
	for _, src := range []string{
		"[C/G/D]", "[C/]", "[xyz]", "[]",
		"[C:]", "[C:2x]", "[C:m]", "[C:0m]", "[C:1m2]",
	} {
		_, err := Parse(src)
		var malformed *MalformedProgressionError
		assert.True(errors.As(err, &malformed), src)
		assert.Equal(1, malformed.Offset, src)
	}
}

func TestChordErrorsStayUnwrappable(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("[C/G/D]")

	var malformed *MalformedProgressionError
	assert.True(errors.As(err, &malformed))
	assert.NotNil(errors.Unwrap(malformed))
}

func TestRenderRoundTripsCanonicalMarkup(t *testing.T) {
	assert := assert.New(t)
	for _, src := range []string{
		"[C]",
		"[G:1m1b]",
		"[Bb7/D][rest:2m]",
		"{2[A][B7#9]}",
		"[C][F]/{2[G]}(1.[D7])",
		"{2[A](tag[B])}",
		"[?Eb-maj7:3b]",
	} {
		nodes := mustParse(t, src)
		assert.Equal(src, Render(nodes), src)

		again := mustParse(t, Render(nodes))
		assert.Equal(nodes, again, src)
	}
}

func TestRenderCanonicalizesDefaultDurations(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "[C:1m][F]")
	assert.Equal("[C][F]", Render(nodes))
}

func TestWalkVisitsEveryChordDepthFirst(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "[C]{2[A](tag[B])}[D]")

	var seen []string
	err := Walk(nodes, func(d *ChordDirective) error {
		seen = append(seen, d.Chord.ASCII())
		return nil
	})
	assert.NoError(err)
	assert.Equal([]string{"C", "A", "B", "D"}, seen)
}

func TestWalkRewritesChordsInPlace(t *testing.T) {
	assert := assert.New(t)
	nodes := mustParse(t, "[C]{2[A]}")

	err := Walk(nodes, func(d *ChordDirective) error {
		d.Chord.Spec = "7"
		return nil
	})
	assert.NoError(err)
	assert.Equal("[C7]{2[A7]}", Render(nodes))
}
