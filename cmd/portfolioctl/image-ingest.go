package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
)

// imageIngestCmd represents the image ingest command
var imageIngestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Ingest image files into the catalog",
	Long: `Ingest one or more image files. Each file is stored under a new unique
name, its camera metadata is extracted, and an image row is created.
A failing file does not stop the others.

Example:
  portfolioctl image ingest dusk.jpg harbour.jpg --title "Harbour" --category landscapes`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := ingestOptions(cmd)

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		failed := ingestFiles(cmd.Context(), a, args, opts)
		if failed > 0 {
			fmt.Fprintf(os.Stderr, "%d of %d file(s) failed\n", failed, len(args))
			os.Exit(1)
		}
	},
}

func init() {
	imageCmd.AddCommand(imageIngestCmd)
	addIngestFlags(imageIngestCmd)
}

func addIngestFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "image title; numbered when several files are ingested")
	cmd.Flags().String("description", "", "image description")
	cmd.Flags().StringSlice("category", nil, "category name or slug (repeatable)")
	cmd.Flags().Bool("inactive", false, "hide the images from the public site")
}

func ingestOptions(cmd *cobra.Command) ingest.Options {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	categories, _ := cmd.Flags().GetStringSlice("category")
	inactive, _ := cmd.Flags().GetBool("inactive")
	return ingest.Options{
		Title:       title,
		Description: description,
		Categories:  categories,
		Inactive:    inactive,
	}
}

// ingestFiles ingests paths as one batch and returns the number of failures.
func ingestFiles(ctx context.Context, a *app, paths []string, opts ingest.Options) int {
	uploads := make([]ingest.Upload, 0, len(paths))
	failed := 0
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", p, err)
			failed++
			continue
		}
		defer f.Close()
		uploads = append(uploads, ingest.Upload{Filename: filepath.Base(p), Body: f})
	}

	for _, res := range a.ingest.IngestBatch(ctx, uploads, opts) {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Filename, res.Err)
			failed++
			continue
		}
		fmt.Printf("%s: image %d stored as %s\n", res.Filename, res.Image.ID, res.Image.Filename)
	}
	return failed
}
