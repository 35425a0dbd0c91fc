package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// categoryCreateCmd represents the category create command
var categoryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Long: `Create a category. Its slug is derived from the name and must be
unique.

Example:
  portfolioctl category create "Black & White" --color "#222222" --order 3`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		color, _ := cmd.Flags().GetString("color")
		order, _ := cmd.Flags().GetInt("order")
		description, _ := cmd.Flags().GetString("description")
		inactive, _ := cmd.Flags().GetBool("inactive")

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		c, err := a.tagger.CreateCategory(tagging.NewCategory{
			Name:         args[0],
			ColorCode:    color,
			DisplayOrder: order,
			Description:  description,
			Inactive:     inactive,
		})
		if err != nil {
			fail("Failed to create category", err)
		}
		fmt.Printf("Created category %d (%s)\n", c.ID, c.Slug)
	},
}

func init() {
	categoryCmd.AddCommand(categoryCreateCmd)
	categoryCreateCmd.Flags().String("color", "", "display color as #rrggbb")
	categoryCreateCmd.Flags().Int("order", 0, "display order")
	categoryCreateCmd.Flags().String("description", "", "markdown description")
	categoryCreateCmd.Flags().Bool("inactive", false, "hide the category from the public site")
}
