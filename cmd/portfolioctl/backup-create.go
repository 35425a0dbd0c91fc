package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
)

// backupCreateCmd represents the backup create command
var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup archive",
	Long: `Write a zip archive holding the catalog snapshot and every stored
image into the backup directory.

Example:
  portfolioctl backup create`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		automatic, _ := cmd.Flags().GetBool("automatic")
		kind := model.BackupManual
		if automatic {
			kind = model.BackupAutomatic
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		b, err := a.backups.Create(cmd.Context(), kind)
		if err != nil {
			fail("Failed to create backup", err)
		}
		fmt.Printf("Created backup %d: %s (%d bytes)\n", b.ID, b.Filename, b.SizeBytes)
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCreateCmd.Flags().Bool("automatic", false, "record the backup as automatic, for scheduled runs")
}
