package cmd

import (
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/music"
	"github.com/jsphweid/leadsheet/render"
	"github.com/jsphweid/leadsheet/song"
	"github.com/jsphweid/leadsheet/transpose"
)

var (
	generateOutput        string
	generatePDF           bool
	generateClean         bool
	generateNoIndex       bool
	generateWatch         bool
	generateCondense      bool
	generateTransposeRoot string
	generateTransposeHalf int
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", constants.GetOutputDir(), "directory to write the book into")
	generateCmd.Flags().BoolVar(&generatePDF, "pdf", false, "also convert the rendered pages to PDF")
	generateCmd.Flags().BoolVar(&generateClean, "clean", false, "wipe the output directory first")
	generateCmd.Flags().BoolVar(&generateNoIndex, "no-index", false, "skip the index page")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "regenerate when song files change")
	generateCmd.Flags().BoolVar(&generateCondense, "condense", false, "fit twice as many measures per row")
	generateCmd.Flags().StringVar(&generateTransposeRoot, "transpose-root", "", "render every song transposed to this root")
	generateCmd.Flags().IntVar(&generateTransposeHalf, "transpose-half-steps", 0, "render every song moved this many half steps")
	generateCmd.MarkFlagsMutuallyExclusive("transpose-root", "transpose-half-steps")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [songs]",
	Short: "Renders the songbook",
	Long:  `Renders every song to HTML, with an index, and optionally to PDF.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := constants.GetSongsDir()
		if len(args) == 1 {
			path = args[0]
		}
		if generateWatch {
			cobra.CheckErr(watch(path))
			return
		}
		cobra.CheckErr(generate(path))
	},
}

// loadSongs accepts either a single song file or a directory of them.
func loadSongs(path string) ([]*song.Song, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return song.LoadDir(path)
	}
	s, err := song.Load(path)
	if err != nil {
		return nil, err
	}
	return []*song.Song{s}, nil
}

// applyGenerateFlags transposes and condenses one loaded song according to
// the generate flags. Each song transposes from its own key.
func applyGenerateFlags(s *song.Song) error {
	var tr *transpose.Transposer
	var err error
	switch {
	case generateTransposeRoot != "":
		var root music.Note
		root, err = music.ParseNote(generateTransposeRoot)
		if err == nil {
			tr, err = transpose.ByRoot(s.Key, root)
		}
	case generateTransposeHalf != 0:
		tr, err = transpose.ByHalfSteps(s.Key, generateTransposeHalf)
	}
	if err != nil {
		return err
	}
	if tr != nil {
		for _, p := range s.Progressions {
			tr.Progression(p.Directives)
		}
		s.Key = tr.To()
	}
	if generateCondense {
		s.CondenseMeasures = true
	}
	return nil
}

func generate(path string) error {
	logger := newLogger()
	songs, err := loadSongs(path)
	if err != nil {
		return err
	}
	for _, s := range songs {
		if err := applyGenerateFlags(s); err != nil {
			return err
		}
	}
	renderer := render.New(generateOutput, logger)
	if generateClean {
		if err := renderer.Clean(); err != nil {
			return err
		}
	}
	if err := renderer.RenderBook(songs, generateNoIndex); err != nil {
		return err
	}
	if generatePDF {
		return render.NewPDFConverter(generateOutput, logger).ConvertSongs()
	}
	return nil
}

func watch(path string) error {
	logger := newLogger()
	if err := generate(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}

	logger.Info("watching for changes", "path", path)
	debounced := debounce.New(500 * time.Millisecond)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			debounced(func() {
				logger.Info("regenerating", "trigger", ev.Name)
				if err := generate(path); err != nil {
					logger.Error("regeneration failed", "error", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
