package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/layout"
	"github.com/jsphweid/leadsheet/song"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <song>",
	Short: "Inspects a song",
	Long:  `Dumps the parsed form of one song file and its layout grids.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := song.Load(args[0])
		cobra.CheckErr(err)
		spew.Dump(s)
		for _, p := range s.Progressions {
			fmt.Printf("layout %s:\n", p.Name)
			grid := layout.Build(p.Directives, s.Time.Subdivisions(), layout.Options{CondenseMeasures: s.CondenseMeasures})
			spew.Dump(grid)
		}
	},
}
