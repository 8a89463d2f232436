package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordweave",
	Short: "wordweave renders Markdown documents into styled DOCX files",
	Long: `wordweave converts Markdown into a formatted Word document, driven by
a theme and style template pair, with optional chart generation from
tabular data.

Usage:
  wordweave render <input.md> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
