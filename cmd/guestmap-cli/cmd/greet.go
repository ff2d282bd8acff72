package cmd

import (
	"fmt"
	"os"

	"github.com/nfrund/guestmap/internal/apiclient"
	"github.com/spf13/cobra"
)

var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "Check that the API is up",
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(apiURL)
		greeting, err := client.Greeting(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(greeting)
	},
}

func init() {
	rootCmd.AddCommand(greetCmd)
}
