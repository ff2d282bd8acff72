package cmd

import (
	"fmt"
	"os"

	"github.com/nfrund/guestmap/internal/apiclient"
	"github.com/nfrund/guestmap/internal/export"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the guestbook as a GeoJSON file",
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(apiURL)
		msgs, err := client.ListMessages(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := export.Write(afero.NewOsFs(), exportOut, msgs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d messages to %s\n", len(msgs), exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "guestmap.geojson", "output file path")
	rootCmd.AddCommand(exportCmd)
}
