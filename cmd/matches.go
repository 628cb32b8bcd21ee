package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lq-ratings/internal/aggregator"
	"github.com/pable/lq-ratings/internal/report"
)

var (
	matchesPlayer   string
	matchesChampion string
	matchesLimit    int
	matchesCompact  bool
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Recent matches with rating and rank changes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runMatches,
}

func init() {
	matchesCmd.Flags().StringVarP(&matchesPlayer, "player", "p", "", "only matches this player played")
	matchesCmd.Flags().StringVarP(&matchesChampion, "champion", "c", aggregator.AllChampions, "with --player, only games on this champion")
	matchesCmd.Flags().IntVarP(&matchesLimit, "limit", "n", 3, "number of matches to show (0 = all)")
	matchesCmd.Flags().BoolVar(&matchesCompact, "compact", false, "one row per match instead of full reports")
}

func runMatches(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := loadHistory(db)
	if err != nil {
		return err
	}

	var ds []aggregator.MatchDelta
	for i := h.Len() - 2; i >= 0; i-- {
		m := h.Match(i)
		if matchesPlayer != "" {
			p, ok := m.Participants[matchesPlayer]
			if !ok {
				continue
			}
			if matchesChampion != "" && matchesChampion != aggregator.AllChampions && p.Champion != matchesChampion {
				continue
			}
		}
		ds = append(ds, aggregator.DeltaAt(h, i))
		if matchesLimit > 0 && len(ds) == matchesLimit {
			break
		}
	}
	if len(ds) == 0 {
		fmt.Fprintln(os.Stdout, "no matches found")
		return nil
	}

	if matchesCompact {
		return report.PrintDeltas(os.Stdout, ds)
	}
	for _, d := range ds {
		if err := report.PrintMatch(os.Stdout, d); err != nil {
			return err
		}
	}
	return nil
}
