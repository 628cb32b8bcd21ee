package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print results as a table.

Schema overview:
  matches(game_id, created_at REAL epoch seconds, duration, game_mode, winning_team, losing_team)
  teams(game_id, team_id, win, towers, inhibitors, dragons, heralds, barons)
  team_bans(game_id, team_id, slot, champion)
  participants(game_id, name, slot, team_id, champion, win, kills, deaths, assists,
    double_kills, triple_kills, quadra_kills, penta_kills, level, damage, cs)

Example: lqratings sql "SELECT champion, COUNT(*) n FROM participants GROUP BY champion ORDER BY n DESC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	table.Header(lo.ToAnySlice(cols)...)
	for _, row := range rows {
		if err := table.Append(lo.ToAnySlice(row)...); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

