package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lq-ratings/internal/aggregator"
	"github.com/pable/lq-ratings/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <game-id-prefix>",
	Short: "Show a stored match with rating and rank changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		fmt.Fprintf(os.Stderr, "No match found with game id prefix %q\n", prefix)
		return nil
	}

	h, err := loadHistory(db)
	if err != nil {
		return err
	}
	i, ok := h.IndexOf(summary.ID)
	if !ok {
		return fmt.Errorf("match %d missing from history", summary.ID)
	}
	return report.PrintMatch(os.Stdout, aggregator.DeltaAt(h, i))
}
