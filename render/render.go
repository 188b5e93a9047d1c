// Package render writes songs out as HTML, in the three views a songbook
// needs: the complete page, a lyrics-free leadsheet, and lyrics alone.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/layout"
	"github.com/jsphweid/leadsheet/model"
	"github.com/jsphweid/leadsheet/song"
	"github.com/jsphweid/leadsheet/util"
)

//go:embed templates
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// ViewTypes are the page variants rendered for every song.
var ViewTypes = []string{"complete", "leadsheet", "lyrics"}

func ValidView(view string) bool {
	for _, v := range ViewTypes {
		if v == view {
			return true
		}
	}
	return false
}

// ViewFilename is the HTML filename for one view of a song.
func ViewFilename(slug, view string) string {
	return slug + "_" + view + ".html"
}

// StyleCSS returns the embedded stylesheet, for callers that serve it
// instead of writing it next to the pages.
func StyleCSS() []byte {
	data, err := templatesFS.ReadFile("templates/style.css")
	if err != nil {
		panic("embedded stylesheet missing: " + err.Error())
	}
	return data
}

func stylesheetOr(href string) string {
	if href == "" {
		return "style.css"
	}
	return href
}

// PageOptions adjust a single song page. The zero value matches the flat
// file layout RenderBook writes.
type PageOptions struct {
	Condense   bool
	Stylesheet string
}

type songView struct {
	Song            *song.Song
	View            string
	Stylesheet      string
	RenderLeadsheet bool
	RenderLyrics    bool
	Progressions    []progressionView
}

type progressionView struct {
	Name string
	Grid layout.Grid
}

// SongHTML writes one view of a song.
func SongHTML(w io.Writer, s *song.Song, view string, opts PageOptions) error {
	if !ValidView(view) {
		return fmt.Errorf("invalid song view type: %s", view)
	}
	data := songView{
		Song:            s,
		View:            view,
		Stylesheet:      stylesheetOr(opts.Stylesheet),
		RenderLeadsheet: view == "complete" || view == "leadsheet",
		RenderLyrics:    view == "complete" || view == "lyrics",
	}
	for _, p := range s.Progressions {
		grid := layout.Build(p.Directives, s.Time.Subdivisions(), layout.Options{
			CondenseMeasures: opts.Condense,
		})
		data.Progressions = append(data.Progressions, progressionView{Name: p.Name, Grid: grid})
	}
	if err := templates.ExecuteTemplate(w, "song.html.tmpl", data); err != nil {
		return fmt.Errorf("rendering song %q: %w", s.Title, err)
	}
	return nil
}

// Summaries groups songs by the first letter of their sortable titles,
// keeping the order they were given in.
func Summaries(songs []*song.Song) model.SongsByLetter {
	byLetter := make(model.SongsByLetter)
	for _, s := range songs {
		title := s.SortableTitle()
		letter := "#"
		for _, r := range title {
			letter = string(unicode.ToUpper(r))
			break
		}
		filenames := make(map[string]string, len(ViewTypes))
		for _, view := range ViewTypes {
			filenames[view] = ViewFilename(s.Slug(), view)
		}
		byLetter[letter] = append(byLetter[letter], model.SongSummary{
			Title:     s.Title,
			SortTitle: title,
			Slug:      s.Slug(),
			Key:       s.Key.String(),
			Filenames: filenames,
		})
	}
	return byLetter
}

// IndexOptions adjust the listing page. Href decides where each song view
// links; nil means the flat filenames RenderBook writes.
type IndexOptions struct {
	Stylesheet string
	Href       func(slug, view string) string
}

type viewLink struct {
	Name string
	Href string
}

type indexEntry struct {
	Title     string
	Key       string
	TitleHref string
	Links     []viewLink
}

type indexSection struct {
	Letter string
	Songs  []indexEntry
}

type indexView struct {
	Stylesheet string
	Sections   []indexSection
}

// IndexHTML writes the song listing page.
func IndexHTML(w io.Writer, songs []*song.Song, opts IndexOptions) error {
	if opts.Href == nil {
		opts.Href = ViewFilename
	}
	byLetter := Summaries(songs)
	data := indexView{Stylesheet: stylesheetOr(opts.Stylesheet)}
	for _, letter := range util.SortedKeys(byLetter) {
		section := indexSection{Letter: letter}
		for _, summary := range byLetter[letter] {
			entry := indexEntry{
				Title:     summary.Title,
				Key:       summary.Key,
				TitleHref: opts.Href(summary.Slug, "complete"),
			}
			for _, view := range ViewTypes {
				entry.Links = append(entry.Links, viewLink{Name: view, Href: opts.Href(summary.Slug, view)})
			}
			section.Songs = append(section.Songs, entry)
		}
		data.Sections = append(data.Sections, section)
	}
	if err := templates.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	return nil
}

// Renderer writes a whole songbook under OutputDir/html.
type Renderer struct {
	OutputDir string
	Logger    *slog.Logger
}

func New(outputDir string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{OutputDir: outputDir, Logger: logger}
}

func (r *Renderer) htmlDir() string {
	return filepath.Join(r.OutputDir, constants.HTMLSubdir)
}

func (r *Renderer) prepareOutputDir() error {
	if err := os.MkdirAll(r.htmlDir(), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(filepath.Join(r.htmlDir(), "style.css"), StyleCSS(), 0o644)
}

// Clean removes the whole output directory.
func (r *Renderer) Clean() error {
	r.Logger.Info("cleaning output directory", "dir", r.OutputDir)
	return os.RemoveAll(r.OutputDir)
}

// RenderSong writes every view of one song.
func (r *Renderer) RenderSong(s *song.Song) error {
	if err := r.prepareOutputDir(); err != nil {
		return err
	}
	r.Logger.Info("rendering song", "title", s.Title)
	for _, view := range ViewTypes {
		path := filepath.Join(r.htmlDir(), ViewFilename(s.Slug(), view))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		err = SongHTML(f, s, view, PageOptions{Condense: s.CondenseMeasures})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderIndex writes the listing page plus index.json, which the pdf
// converter and the publisher read back.
func (r *Renderer) RenderIndex(songs []*song.Song) error {
	if err := r.prepareOutputDir(); err != nil {
		return err
	}
	r.Logger.Info("rendering index", "songs", len(songs))
	f, err := os.Create(filepath.Join(r.htmlDir(), "index.html"))
	if err != nil {
		return fmt.Errorf("creating index.html: %w", err)
	}
	err = IndexHTML(f, songs, IndexOptions{})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(Summaries(songs), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index.json: %w", err)
	}
	return os.WriteFile(filepath.Join(r.htmlDir(), constants.IndexJSONFile), data, 0o644)
}

// RenderBook renders every song and, unless told otherwise, the index.
func (r *Renderer) RenderBook(songs []*song.Song, noIndex bool) error {
	for _, s := range songs {
		if err := r.RenderSong(s); err != nil {
			return err
		}
	}
	if noIndex {
		return nil
	}
	return r.RenderIndex(songs)
}

// PDFFilename converts a rendered HTML filename to its pdf counterpart.
func PDFFilename(htmlName string) string {
	return strings.TrimSuffix(htmlName, ".html") + ".pdf"
}
