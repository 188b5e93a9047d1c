package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/song"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [songs]",
	Short: "Checks song files",
	Long:  `Parses every song file and reports everything that fails.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := constants.GetSongsDir()
		if len(args) == 1 {
			path = args[0]
		}
		cobra.CheckErr(check(path))
	},
}

func songFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}

// check keeps going past bad files so one run reports every problem.
func check(path string) error {
	files, err := songFiles(path)
	if err != nil {
		return err
	}
	bad := 0
	for _, f := range files {
		s, err := song.Load(f)
		if err != nil {
			bad++
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf("%s: %s, %s, %d progressions\n", s.Slug(), s.Key, s.Time, len(s.Progressions))
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d song files failed", bad, len(files))
	}
	fmt.Printf("%d songs ok\n", len(files))
	return nil
}
