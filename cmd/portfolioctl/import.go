package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/legacy"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <portfolio.json>",
	Short: "Import a legacy portfolio document",
	Long: `Import images from a legacy portfolio JSON document. Asset files are
read from the --assets directory and copied into storage. Images whose
filename is already in the catalog are skipped.

Example:
  portfolioctl import portfolio.json --assets ./photos`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		assets, _ := cmd.Flags().GetString("assets")

		f, err := os.Open(args[0])
		if err != nil {
			fail("Failed to open document", err)
		}
		doc, err := legacy.ReadDocument(f)
		_ = f.Close()
		if err != nil {
			fail("Failed to read document", err)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		report, err := legacy.NewImporter(a.images, a.tagger, a.storage, a.log).Import(cmd.Context(), doc, assets)
		if report != nil {
			printImportReport(report)
		}
		if err != nil {
			fail("Import aborted", err)
		}
		if len(report.Failed) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("assets", ".", "directory holding the image files")
}

func printImportReport(r *legacy.Report) {
	fmt.Printf("Imported: %d\n", len(r.Imported))
	fmt.Printf("Skipped:  %d\n", len(r.Skipped))
	fmt.Printf("Failed:   %d\n", len(r.Failed))

	names := make([]string, 0, len(r.Failed))
	for name := range r.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, r.Failed[name])
	}
}
