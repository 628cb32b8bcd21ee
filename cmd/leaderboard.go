package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lq-ratings/internal/aggregator"
	"github.com/pable/lq-ratings/internal/report"
)

var leaderboardMinGames int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Current standings of every rated player",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardMinGames, "min-games", 0, "hide players with fewer games")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := loadHistory(db)
	if err != nil {
		return err
	}
	if h.Len() == 1 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'lqratings import <dir>' to add some.")
		return nil
	}

	matches := h.Matches()
	board := aggregator.Leaderboard(h.Latest(), h.Algorithm())
	stats := make(map[string]*aggregator.PlayerStats, len(board))
	for _, s := range board {
		stats[s.Name] = aggregator.NewPlayerStats(s.Name, matches)
	}

	fmt.Fprintf(os.Stdout, "\n%d players, %d matches, %s ratings\n\n", len(board), len(matches), h.Algorithm().Name())
	return report.PrintLeaderboard(os.Stdout, h.Algorithm(), board, stats, leaderboardMinGames)
}
