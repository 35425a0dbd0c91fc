package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// categoryDefaultCmd represents the category default command
var categoryDefaultCmd = &cobra.Command{
	Use:   "default [id]",
	Short: "Show or change the default category",
	Long: `Show the default category, or make the given category the default.

Example:
  portfolioctl category default
  portfolioctl category default 2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		if len(args) == 1 {
			if err := a.tagger.SetDefaultCategory(parseID("category", args[0])); err != nil {
				fail("Failed to set default category", err)
			}
		}

		c, err := a.tagger.DefaultCategory()
		if err != nil {
			fail("Failed to get default category", err)
		}
		fmt.Printf("Default category: %d %s (%s)\n", c.ID, c.Name, c.Slug)
	},
}

func init() {
	categoryCmd.AddCommand(categoryDefaultCmd)
}
