// Package song loads leadsheet documents from YAML. A document names its
// key and meter and holds one or more chord progressions plus an optional
// form listing the sections of the song in play order.
package song

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsphweid/leadsheet/music"
	"github.com/jsphweid/leadsheet/progression"
	"github.com/jsphweid/leadsheet/util"
)

// Song is a fully parsed document. Every field has already been validated,
// so consumers never see raw text for the key, meter, or chords.
type Song struct {
	Title            string
	Key              music.Key
	Time             TimeSignature
	CondenseMeasures bool
	Progressions     []Progression
	Form             []FormSection
}

// Progression is a named chord sequence. Source keeps the text as written
// in the document; Directives is its parsed form.
type Progression struct {
	Name       string
	Source     string
	Directives []progression.Directive
}

// FormSection is one entry of the song form, referring to a progression
// by name.
type FormSection struct {
	ProgressionName string
	Comment         string
	Lyrics          string
}

// lyricsHintLimit caps how much of the first lyric line shows up in
// collapsed views.
const lyricsHintLimit = 50

// LyricsHint is a teaser built from the first non-empty lyric line, or
// empty when the section has no lyrics.
func (f FormSection) LyricsHint() string {
	for _, line := range strings.Split(f.Lyrics, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return util.Truncate(line, lyricsHintLimit) + "..."
	}
	return ""
}

// LyricsLines splits the lyrics for display.
func (f FormSection) LyricsLines() []string {
	if f.Lyrics == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(f.Lyrics, "\n"), "\n")
}

// Progression resolves a form section reference, or any progression by
// name.
func (s *Song) Progression(name string) (Progression, bool) {
	for _, p := range s.Progressions {
		if p.Name == name {
			return p, true
		}
	}
	return Progression{}, false
}

// Slug is the identifier used in filenames and URLs.
func (s *Song) Slug() string {
	return strings.ReplaceAll(strings.ToLower(s.Title), " ", "_")
}

// SortableTitle drops a leading article so "The Weight" files under W.
func (s *Song) SortableTitle() string {
	words := strings.Fields(s.Title)
	if len(words) > 1 && strings.EqualFold(words[0], "the") {
		return strings.Join(words[1:], " ")
	}
	return s.Title
}

type songDoc struct {
	Title            string           `yaml:"title"`
	Key              string           `yaml:"key"`
	Time             string           `yaml:"time"`
	CondenseMeasures bool             `yaml:"condense_measures"`
	Progressions     []progressionDoc `yaml:"progressions"`
	Form             []formDoc        `yaml:"form"`
}

type progressionDoc struct {
	Name   string `yaml:"name"`
	Chords string `yaml:"chords"`
}

type formDoc struct {
	Progression string `yaml:"progression"`
	Comment     string `yaml:"comment"`
	Lyrics      string `yaml:"lyrics"`
}

// Parse reads one YAML document and validates it whole: the key must be
// realizable, the meter well formed, every progression must parse, and
// every form section must refer to a declared progression.
func Parse(data []byte) (*Song, error) {
	var doc songDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("song is not valid yaml: %w", err)
	}
	if doc.Title == "" {
		return nil, fmt.Errorf("song is missing a title")
	}

	s := &Song{Title: doc.Title, CondenseMeasures: doc.CondenseMeasures}

	if doc.Key == "" {
		return nil, fmt.Errorf("song %q: missing key", doc.Title)
	}
	key, err := music.ParseKey(doc.Key)
	if err != nil {
		return nil, fmt.Errorf("song %q: %w", doc.Title, err)
	}
	s.Key = key

	s.Time = DefaultTimeSignature()
	if doc.Time != "" {
		ts, err := ParseTimeSignature(doc.Time)
		if err != nil {
			return nil, fmt.Errorf("song %q: %w", doc.Title, err)
		}
		s.Time = ts
	}

	if len(doc.Progressions) == 0 {
		return nil, fmt.Errorf("song %q: no progressions", doc.Title)
	}
	seen := make(map[string]bool, len(doc.Progressions))
	for _, p := range doc.Progressions {
		if p.Name == "" {
			return nil, fmt.Errorf("song %q: progression with no name", doc.Title)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("song %q: duplicate progression %q", doc.Title, p.Name)
		}
		seen[p.Name] = true
		nodes, err := progression.Parse(p.Chords)
		if err != nil {
			return nil, fmt.Errorf("song %q: progression %q: %w", doc.Title, p.Name, err)
		}
		s.Progressions = append(s.Progressions, Progression{
			Name:       p.Name,
			Source:     p.Chords,
			Directives: nodes,
		})
	}

	for _, f := range doc.Form {
		if !seen[f.Progression] {
			return nil, fmt.Errorf("song %q: form refers to unknown progression %q", doc.Title, f.Progression)
		}
		s.Form = append(s.Form, FormSection{
			ProgressionName: f.Progression,
			Comment:         f.Comment,
			Lyrics:          f.Lyrics,
		})
	}

	return s, nil
}

// Load parses the song file at path.
func Load(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading song file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadDir loads every .yaml/.yml file in dir, sorted by sortable title.
// Two songs whose titles collapse to the same slug are an error, since
// they would collide in filenames and URLs.
func LoadDir(dir string) ([]*Song, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading song directory: %w", err)
	}
	var songs []*Song
	slugs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		s, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if prev, ok := slugs[s.Slug()]; ok {
			return nil, fmt.Errorf("songs %q and %q share the slug %q", prev, s.Title, s.Slug())
		}
		slugs[s.Slug()] = s.Title
		songs = append(songs, s)
	}
	sort.Slice(songs, func(i, j int) bool {
		return strings.ToLower(songs[i].SortableTitle()) < strings.ToLower(songs[j].SortableTitle())
	})
	return songs, nil
}
