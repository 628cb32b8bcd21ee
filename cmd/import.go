package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/lq-ratings/internal/champions"
	"github.com/pable/lq-ratings/internal/parser"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <dir|match.json>...",
	Short: "Import match records exported from the League client",
	Long: `Parse LCU match-history JSON files, discard games whose rosters are not two
full teams with exactly one winner, and store the rest. Directories are scanned
for *.json files. Games already stored are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "re-import games that are already stored")
}

func runImport(cmd *cobra.Command, args []string) error {
	table, err := champions.LoadFile(championsPath)
	if err != nil {
		return fmt.Errorf("load champions: %w", err)
	}
	records, err := parser.ReadFiles(args)
	if err != nil {
		return err
	}

	p := parser.New(table)
	p.RosterSize = rosterSize
	p.Logger = logger
	matches, err := p.ParseAll(records)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var imported, skipped int
	for _, m := range matches {
		if !importForce {
			exists, err := db.MatchExists(m.ID)
			if err != nil {
				return fmt.Errorf("check match: %w", err)
			}
			if exists {
				logger.Debug("match already stored", zap.Int64("game_id", m.ID))
				skipped++
				continue
			}
		}
		if err := db.InsertMatch(m); err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		imported++
	}

	fmt.Fprintf(os.Stdout, "Read %d records: %d imported, %d already stored, %d discarded or duplicate.\n",
		len(records), imported, skipped, len(records)-len(matches))
	return nil
}
