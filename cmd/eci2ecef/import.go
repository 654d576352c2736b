// ABOUTME: Import command for restoring conversions from a YAML backup
// ABOUTME: Adds conversions that are not already in the history database

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/eci2ecef/internal/storage"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import conversions from a YAML backup",
	Long: `Import conversions from a YAML file created by 'eci2ecef export'.

Conversions whose ID is already recorded are skipped.

Examples:
  eci2ecef import history.yaml --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Fprintf(cmd.OutOrStdout(), "Import conversions from '%s'? [y/N] ", filename)
			reader := bufio.NewReader(cmd.InOrStdin())
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
				return nil
			}
		}

		repo, err := openDB()
		if err != nil {
			return err
		}

		imported, err := storage.ImportFromYAML(repo, data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}
		total, _ := repo.CountConversions()

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", color.GreenString("Import complete"))
		fmt.Fprintf(cmd.OutOrStdout(), "  %d imported, %d conversions in database\n", imported, total)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
