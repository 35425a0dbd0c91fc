package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// categoryListCmd represents the category list command
var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	Long: `List all categories in display order, including inactive ones.
The default category is marked with an asterisk.

Example:
  portfolioctl category list`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		if err := listCategories(a); err != nil {
			fail("Failed to list categories", err)
		}
	},
}

func init() {
	categoryCmd.AddCommand(categoryListCmd)
}

func listCategories(a *app) error {
	categories, err := a.categories.ListCategories(false)
	if err != nil {
		return err
	}
	def, err := a.tagger.DefaultCategory()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tNAME\tCOLOR\tORDER\tACTIVE")
	for _, c := range categories {
		marker := ""
		if c.ID == def.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%d%s\t%s\t%s\t%s\t%d\t%v\n", c.ID, marker, c.Slug, c.Name, c.ColorCode, c.DisplayOrder, c.IsActive)
	}
	return w.Flush()
}
