package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// categoryRenameCmd represents the category rename command
var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a category",
	Long: `Rename a category and recompute its slug. Image associations are kept.

Example:
  portfolioctl category rename 4 "Street Photography"`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID("category", args[0])

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		c, err := a.tagger.RenameCategory(id, args[1])
		if err != nil {
			fail("Failed to rename category", err)
		}
		fmt.Printf("Renamed category %d to %q (%s)\n", c.ID, c.Name, c.Slug)
	},
}

func init() {
	categoryCmd.AddCommand(categoryRenameCmd)
}
