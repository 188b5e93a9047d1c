package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/midi"
)

var (
	exportOutput string
	exportTempo  float64
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", constants.GetOutputDir(), "directory to write MIDI files into")
	exportCmd.Flags().Float64Var(&exportTempo, "tempo", constants.DefaultTempoBPM, "playback tempo in beats per minute")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [songs]",
	Short: "Exports songs as MIDI",
	Long:  `Exports every song's progressions as a standard MIDI file.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := constants.GetSongsDir()
		if len(args) == 1 {
			path = args[0]
		}
		cobra.CheckErr(export(path))
	},
}

func export(path string) error {
	logger := newLogger()
	songs, err := loadSongs(path)
	if err != nil {
		return err
	}
	dir := filepath.Join(exportOutput, constants.MIDISubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, s := range songs {
		out := filepath.Join(dir, s.Slug()+".mid")
		logger.Info("exporting midi", "song", s.Title, "path", out)
		if err := midi.WriteFile(s, exportTempo, out); err != nil {
			return fmt.Errorf("exporting %q: %w", s.Title, err)
		}
	}
	return nil
}
