package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// backupListCmd represents the backup list command
var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded backups",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		backups, err := a.backups.List()
		if err != nil {
			fail("Failed to list backups", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFILENAME\tSIZE\tTYPE\tSTATUS\tCREATED")
		for _, b := range backups {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n", b.ID, b.Filename, b.SizeBytes, b.Type, b.Status, b.CreatedAt.Format(time.RFC3339))
		}
		_ = w.Flush()
	},
}

func init() {
	backupCmd.AddCommand(backupListCmd)
}
