package cmd

import (
	"fmt"
	"os"

	"github.com/nfrund/guestmap/internal/apiclient"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show message and location counters",
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(apiURL)
		messages, locations, err := client.Stats(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d messages across %d locations\n", messages, locations)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
