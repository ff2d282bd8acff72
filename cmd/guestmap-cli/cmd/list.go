package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nfrund/guestmap/internal/apiclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored guestbook messages",
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(apiURL)
		msgs, err := client.ListMessages(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(msgs) == 0 {
			fmt.Println("No messages yet.")
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Date", "Name", "Message", "Lat", "Lng"})
		for _, m := range msgs {
			table.Append([]string{
				m.Date.Format("2006-01-02 15:04"),
				m.Name,
				m.Message,
				strconv.FormatFloat(m.Latitude, 'f', 4, 64),
				strconv.FormatFloat(m.Longitude, 'f', 4, 64),
			})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
