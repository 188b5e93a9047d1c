package song

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDoc = `
title: Autumn Leaves
key: E-
time: 4/4
progressions:
  - name: a section
    chords: "[Am7][D7][Gmaj7][Cmaj7]"
  - name: b section
    chords: "[F#m7b5][B7][Em:2m]"
form:
  - progression: a section
    lyrics: |
      The falling leaves drift by the window
      The autumn leaves of red and gold
  - progression: b section
    comment: twice through
`

func TestParseFullDocument(t *testing.T) {
	assert := assert.New(t)

	s, err := Parse([]byte(fullDoc))
	require.NoError(t, err)

	assert.Equal("Autumn Leaves", s.Title)
	assert.Equal("E-", s.Key.ASCII())
	assert.Equal(TimeSignature{Count: 4, Unit: 4}, s.Time)
	assert.False(s.CondenseMeasures)

	require.Len(t, s.Progressions, 2)
	assert.Equal("a section", s.Progressions[0].Name)
	assert.Equal("[Am7][D7][Gmaj7][Cmaj7]", s.Progressions[0].Source)
	assert.Len(s.Progressions[0].Directives, 4)
	assert.Len(s.Progressions[1].Directives, 3)

	require.Len(t, s.Form, 2)
	assert.Equal("a section", s.Form[0].ProgressionName)
	assert.Contains(s.Form[0].Lyrics, "falling leaves")
	assert.Equal("twice through", s.Form[1].Comment)
	assert.Empty(s.Form[1].Lyrics)
}

func TestParseAppliesDefaults(t *testing.T) {
	assert := assert.New(t)

	s, err := Parse([]byte("title: Riff Song\nkey: C\nprogressions:\n  - name: main\n    chords: \"[C][G]\"\n"))
	require.NoError(t, err)

	assert.Equal(DefaultTimeSignature(), s.Time)
	assert.False(s.CondenseMeasures)
	assert.Empty(s.Form)
}

func TestParseRejectsBrokenDocuments(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"not yaml":        {"title: [unclosed", "not valid yaml"},
		"missing title":   {"key: C\nprogressions:\n  - name: a\n    chords: \"[C]\"\n", "missing a title"},
		"missing key":     {"title: X\nprogressions:\n  - name: a\n    chords: \"[C]\"\n", "missing key"},
		"bad key":         {"title: X\nkey: H\nprogressions:\n  - name: a\n    chords: \"[C]\"\n", "song \"X\""},
		"bad time":        {"title: X\nkey: C\ntime: 5/3\nprogressions:\n  - name: a\n    chords: \"[C]\"\n", "malformed time signature"},
		"zero count time": {"title: X\nkey: C\ntime: 0/4\nprogressions:\n  - name: a\n    chords: \"[C]\"\n", "count must be at least 1"},
		"no progressions": {"title: X\nkey: C\n", "no progressions"},
		"unnamed":         {"title: X\nkey: C\nprogressions:\n  - chords: \"[C]\"\n", "progression with no name"},
		"duplicate name":  {"title: X\nkey: C\nprogressions:\n  - name: a\n    chords: \"[C]\"\n  - name: a\n    chords: \"[G]\"\n", "duplicate progression"},
		"bad chords":      {"title: X\nkey: C\nprogressions:\n  - name: a\n    chords: \"[xyz]\"\n", "progression \"a\""},
		"empty chords":    {"title: X\nkey: C\nprogressions:\n  - name: a\n    chords: \"\"\n", "progression \"a\""},
		"unknown form":    {"title: X\nkey: C\nprogressions:\n  - name: a\n    chords: \"[C]\"\nform:\n  - progression: b\n", "unknown progression \"b\""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestProgressionLookup(t *testing.T) {
	assert := assert.New(t)

	s, err := Parse([]byte(fullDoc))
	require.NoError(t, err)

	p, ok := s.Progression("b section")
	assert.True(ok)
	assert.Equal("b section", p.Name)

	_, ok = s.Progression("bridge")
	assert.False(ok)
}

func TestLyricsHint(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(FormSection{}.LyricsHint())
	assert.Equal("La la la...", FormSection{Lyrics: "La la la"}.LyricsHint())
	assert.Equal("First line...", FormSection{Lyrics: "First line\nSecond line"}.LyricsHint())

	long := strings.Repeat("ab", 30)
	assert.Equal(strings.Repeat("ab", 25)+"...", FormSection{Lyrics: long}.LyricsHint())
}

func TestLyricsLines(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(FormSection{}.LyricsLines())
	assert.Equal(
		[]string{"one", "two"},
		FormSection{Lyrics: "one\ntwo\n"}.LyricsLines(),
	)
}

func TestSlug(t *testing.T) {
	s := &Song{Title: "The Entertainer"}
	assert.Equal(t, "the_entertainer", s.Slug())
}

func TestSortableTitle(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Weight", (&Song{Title: "The Weight"}).SortableTitle())
	assert.Equal("Yesterday", (&Song{Title: "Yesterday"}).SortableTitle())
	assert.Equal("The", (&Song{Title: "The"}).SortableTitle())
	assert.Equal("long road", (&Song{Title: "the long road"}).SortableTitle())
}

func TestLoadSongFile(t *testing.T) {
	assert := assert.New(t)

	s, err := Load(filepath.Join("testdata", "autumn_leaves.yaml"))
	require.NoError(t, err)
	assert.Equal("Autumn Leaves", s.Title)
	assert.Equal(8, s.Time.Subdivisions())

	other, err := Load(filepath.Join("testdata", "the_entertainer.yaml"))
	require.NoError(t, err)
	assert.True(other.CondenseMeasures)
	assert.Equal(4, other.Time.Subdivisions())
}

func TestLoadReportsPathOnFailure(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}

func writeSong(t *testing.T, dir, filename, title string) {
	t.Helper()
	doc := "title: " + title + "\nkey: C\nprogressions:\n  - name: main\n    chords: \"[C][G]\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(doc), 0o644))
}

func TestLoadDirSortsAndFilters(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeSong(t, dir, "weight.yaml", "The Weight")
	writeSong(t, dir, "autumn.yml", "Autumn Leaves")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a song"), 0o644))

	songs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal("Autumn Leaves", songs[0].Title)
	assert.Equal("The Weight", songs[1].Title)
}

func TestLoadDirRejectsDuplicateSlugs(t *testing.T) {
	dir := t.TempDir()
	writeSong(t, dir, "one.yaml", "My Song")
	writeSong(t, dir, "two.yaml", "my song")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share the slug")
}

func TestLoadDirPropagatesSongErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("title: Bad\n"), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
