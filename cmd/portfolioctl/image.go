package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage catalog images",
	Long:  `Ingest, watch for and delete catalog images.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'image' requires a subcommand (ingest, watch, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
}
