package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backupRestoreCmd represents the backup restore command
var backupRestoreCmd = &cobra.Command{
	Use:   "restore <archive.zip>",
	Short: "Restore the catalog from a backup archive",
	Long: `Replace the catalog with the snapshot in a backup archive and copy its
images back into storage. A safety backup of the current state is taken
first.

Example:
  portfolioctl backup restore backups/portfolio_backup_20261015_101500.zip`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		safety, err := a.backups.Restore(cmd.Context(), args[0])
		if err != nil {
			fail("Failed to restore backup", err)
		}
		if safety != nil {
			fmt.Printf("Safety backup written to %s\n", safety.Filename)
		}
		fmt.Printf("Restored catalog from %s\n", args[0])
	},
}

func init() {
	backupCmd.AddCommand(backupRestoreCmd)
}
