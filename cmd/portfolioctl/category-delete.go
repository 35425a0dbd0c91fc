package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// categoryDeleteCmd represents the category delete command
var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Long: `Delete a category. Images left without any category are moved to the
default category. The default category itself cannot be deleted.

Example:
  portfolioctl category delete 4`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID("category", args[0])

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		reassigned, err := a.tagger.DeleteCategory(id)
		if err != nil {
			fail("Failed to delete category", err)
		}
		fmt.Printf("Deleted category %d\n", id)
		if len(reassigned) > 0 {
			fmt.Printf("Moved %d image(s) to the default category: %v\n", len(reassigned), reassigned)
		}
	},
}

func init() {
	categoryCmd.AddCommand(categoryDeleteCmd)
}
