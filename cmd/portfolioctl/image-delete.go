package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// imageDeleteCmd represents the image delete command
var imageDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an image and its stored file",
	Long: `Delete an image from the catalog together with its stored file.

Example:
  portfolioctl image delete 42`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID("image", args[0])

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		img, err := a.ingest.Remove(cmd.Context(), id)
		if err != nil {
			fail("Failed to delete image", err)
		}
		fmt.Printf("Deleted image %d (%s)\n", img.ID, img.Filename)
	},
}

func init() {
	imageCmd.AddCommand(imageDeleteCmd)
}
