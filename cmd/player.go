package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/lq-ratings/internal/aggregator"
	"github.com/pable/lq-ratings/internal/history"
	"github.com/pable/lq-ratings/internal/report"
)

var playerChampion string

// playerCmd prints the rating and record of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <name> [<name>...]",
	Short: "Rating, record and champion pool for one or more players",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().StringVarP(&playerChampion, "champion", "c", aggregator.AllChampions, "restrict the record to one champion")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := loadHistory(db)
	if err != nil {
		return err
	}
	ranks := standingsByName(h)

	var missing []string
	for _, name := range args {
		standing, ok := ranks[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		ps := aggregator.NewPlayerStats(name, h.Matches())
		if err := report.PrintPlayer(os.Stdout, ps, standing, playerChampion); err != nil {
			return err
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no matches found for %s", strings.Join(missing, ", "))
	}
	return nil
}

// standingsByName indexes the current leaderboard by player name.
func standingsByName(h *history.History) map[string]aggregator.Standing {
	board := aggregator.Leaderboard(h.Latest(), h.Algorithm())
	out := make(map[string]aggregator.Standing, len(board))
	for _, s := range board {
		out[s.Name] = s
	}
	return out
}
