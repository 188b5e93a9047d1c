package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "leadsheet",
	Short: "Leadsheet songbook tools",
	Long:  `Parses song files, transposes them, and renders them as a songbook.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
