package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// apiURL is the base URL of the guestbook API, shared by every subcommand.
var apiURL string

var rootCmd = &cobra.Command{
	Use:   "guestmap-cli",
	Short: "GuestMap CLI tool",
	Long: `GuestMap CLI talks to a running guestbook server.

Available commands:
  greet      Check that the API is up
  list       List the stored guestbook messages
  post       Leave a guestbook message
  export     Write the guestbook as a GeoJSON file

Use "guestmap-cli [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:5000", "base URL of the guestbook server")
}
