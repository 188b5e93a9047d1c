package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/music"
	"github.com/jsphweid/leadsheet/progression"
	"github.com/jsphweid/leadsheet/transpose"
)

var (
	transposeFrom      string
	transposeTo        string
	transposeHalfSteps int
)

func init() {
	transposeCmd.Flags().StringVar(&transposeFrom, "from", "", "source key, e.g. Eb or F#m")
	transposeCmd.Flags().StringVar(&transposeTo, "to", "", "target key root, e.g. Bb")
	transposeCmd.Flags().IntVar(&transposeHalfSteps, "half-steps", 0, "chromatic distance to move, may be negative")
	transposeCmd.MarkFlagRequired("from")
	transposeCmd.MarkFlagsMutuallyExclusive("to", "half-steps")
	rootCmd.AddCommand(transposeCmd)
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <progression>",
	Short: "Transposes progression markup",
	Long:  `Parses chord-chart markup, transposes it, and prints the result.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out, err := runTranspose(cmd, args[0])
		cobra.CheckErr(err)
		fmt.Println(out)
	},
}

func runTranspose(cmd *cobra.Command, markup string) (string, error) {
	nodes, err := progression.Parse(markup)
	if err != nil {
		return "", err
	}
	from, err := music.ParseKey(transposeFrom)
	if err != nil {
		return "", err
	}

	var tr *transpose.Transposer
	switch {
	case transposeTo != "":
		root, err := music.ParseNote(transposeTo)
		if err != nil {
			return "", err
		}
		tr, err = transpose.ByRoot(from, root)
		if err != nil {
			return "", err
		}
	case cmd.Flags().Changed("half-steps"):
		tr, err = transpose.ByHalfSteps(from, transposeHalfSteps)
		if err != nil {
			return "", err
		}
	default:
		return "", errors.New("one of --to or --half-steps is required")
	}

	tr.Progression(nodes)
	return progression.Render(nodes), nil
}
