package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordweave/wordweave/internal/style"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes and templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := style.LoadCatalog(flagThemeDir)
		if err != nil {
			return err
		}
		fmt.Println("Themes:")
		for _, name := range catalog.Themes() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("Templates:")
		for _, name := range catalog.Templates() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

func init() {
	themesCmd.Flags().StringVar(&flagThemeDir, "theme-dir", "", "directory with extra theme and template YAML files")
	rootCmd.AddCommand(themesCmd)
}
