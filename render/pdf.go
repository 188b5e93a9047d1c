package render

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/model"
	"github.com/jsphweid/leadsheet/util"
)

// DefaultPDFCommand is the converter binary looked up on PATH.
const DefaultPDFCommand = "wkhtmltopdf"

// PDFConverter turns rendered pages into PDFs by shelling out to
// wkhtmltopdf. It reads the index the Renderer wrote, so the HTML pass has
// to happen first.
type PDFConverter struct {
	OutputDir string
	Command   string
	Logger    *slog.Logger
}

func NewPDFConverter(outputDir string, logger *slog.Logger) *PDFConverter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFConverter{OutputDir: outputDir, Command: DefaultPDFCommand, Logger: logger}
}

func (c *PDFConverter) loadIndex() (model.SongsByLetter, error) {
	path := filepath.Join(c.OutputDir, constants.HTMLSubdir, constants.IndexJSONFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot find index file: %w", err)
	}
	var index model.SongsByLetter
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return index, nil
}

// ConvertSongs converts every rendered view of every indexed song.
func (c *PDFConverter) ConvertSongs() error {
	index, err := c.loadIndex()
	if err != nil {
		return err
	}
	htmlDir, err := filepath.Abs(filepath.Join(c.OutputDir, constants.HTMLSubdir))
	if err != nil {
		return err
	}
	pdfDir := filepath.Join(c.OutputDir, constants.PDFSubdir)
	if err := os.MkdirAll(pdfDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, letter := range util.SortedKeys(index) {
		for _, summary := range index[letter] {
			c.Logger.Info("converting song to pdf", "title", summary.Title)
			for _, view := range ViewTypes {
				filename, ok := summary.Filenames[view]
				if !ok {
					continue
				}
				src := "file://" + filepath.Join(htmlDir, filename)
				dst := filepath.Join(pdfDir, PDFFilename(filename))
				if out, err := exec.Command(c.Command, src, dst).CombinedOutput(); err != nil {
					return fmt.Errorf("%s %s: %w: %s", c.Command, filename, err, out)
				}
			}
		}
	}
	return nil
}
