package cmd

import (
	"fmt"
	"os"

	"github.com/nfrund/guestmap/internal/apiclient"
	"github.com/spf13/cobra"
)

var (
	postName    string
	postMessage string
	postLat     float64
	postLng     float64
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Leave a guestbook message",
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(apiURL)
		stored, err := client.CreateMessage(cmd.Context(), postName, postMessage, postLat, postLng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Stored message %s at %s\n", stored.ID, stored.Date.Format("2006-01-02 15:04:05"))
	},
}

func init() {
	postCmd.Flags().StringVar(&postName, "name", "", "your name (required)")
	postCmd.Flags().StringVar(&postMessage, "message", "", "the message, 5 to 100 characters (required)")
	postCmd.Flags().Float64Var(&postLat, "lat", 0, "latitude in degrees")
	postCmd.Flags().Float64Var(&postLng, "lng", 0, "longitude in degrees")
	_ = postCmd.MarkFlagRequired("name")
	_ = postCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(postCmd)
}
