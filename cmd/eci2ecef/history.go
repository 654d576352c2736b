// ABOUTME: History command for recorded conversions
// ABOUTME: Lists recent conversions and clears the history database

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/eci2ecef/internal/ui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List recorded conversions",
	Long: `List conversions stored with --record, newest first.

Examples:
  eci2ecef history
  eci2ecef history --limit 5
  eci2ecef history clear --confirm`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		repo, err := openDB()
		if err != nil {
			return err
		}

		conversions, err := repo.ListConversions(limit)
		if err != nil {
			return fmt.Errorf("failed to list conversions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(conversions) == 0 {
			fmt.Fprintln(out, "No conversions recorded.")
			return nil
		}
		for _, c := range conversions {
			fmt.Fprintln(out, ui.FormatConversion(c))
		}

		total, err := repo.CountConversions()
		if err == nil && total > len(conversions) {
			fmt.Fprintf(out, "%s\n", color.New(color.Faint).Sprintf("showing %d of %d", len(conversions), total))
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded conversions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Fprint(cmd.OutOrStdout(), "Delete all recorded conversions? [y/N] ")
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
		if err := repo.Reset(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", color.GreenString("History cleared"))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of conversions to show (0 for all)")
	historyClearCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
