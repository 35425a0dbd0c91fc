package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list and restore catalog backups",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'backup' requires a subcommand (create, list, restore)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
