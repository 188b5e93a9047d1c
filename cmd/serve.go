package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/server"
)

var (
	serveAddr       string
	serveCORSOrigin string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.DefaultAddr, "address to listen on")
	serveCmd.Flags().StringVar(&serveCORSOrigin, "cors-origin", "", "restrict CORS to this origin")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [songs]",
	Short: "Serves the songbook",
	Long:  `Serves the songbook over HTTP, rereading song files on every request.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := constants.GetSongsDir()
		if len(args) == 1 {
			dir = args[0]
		}
		srv := server.New(dir, newLogger())
		if serveCORSOrigin != "" {
			srv.AllowedOrigins = []string{serveCORSOrigin}
		}
		cobra.CheckErr(srv.ListenAndServe(serveAddr))
	},
}
