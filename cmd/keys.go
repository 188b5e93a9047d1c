package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/music"
)

func init() {
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys [mode]",
	Short: "Lists transposable roots",
	Long:  `Lists every root whose key in the given mode is realizable. Defaults to major.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode := music.Major
		if len(args) == 1 {
			m, ok := music.ModeByName(args[0])
			if !ok {
				cobra.CheckErr(fmt.Errorf("unknown mode %q", args[0]))
			}
			mode = m
		}
		for _, root := range music.TransposableRoots(mode) {
			fmt.Println(root)
		}
	},
}
