package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lq-ratings/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <name>",
	Short: "Chronological rating trajectory for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	name := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := loadHistory(db)
	if err != nil {
		return err
	}
	points := h.Trajectory(name)
	if len(points) == 0 {
		return fmt.Errorf("no matches found for %s", name)
	}
	return report.PrintTrend(os.Stdout, name, points)
}
