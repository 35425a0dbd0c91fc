package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// categoryCmd represents the category command
var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage image categories",
	Long:  `List, create, rename and delete image categories.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'category' requires a subcommand (list, create, rename, delete, default)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
}

func parseID(kind, raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		fail("Invalid "+kind+" id", fmt.Errorf("%q is not a positive number", raw))
	}
	return uint(id)
}
