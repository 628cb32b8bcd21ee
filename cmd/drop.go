package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/lq-ratings/internal/storage"
)

var (
	dropForce bool
	dropMatch string
)

// dropCmd deletes the match database, or a single match with --match.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the match database or one stored match",
	Long: `Permanently delete the SQLite match database. All imported matches will be lost;
re-run import afterwards to rebuild. With --match only that game is removed, and
every rating is recomputed from the remaining matches on the next command.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropMatch, "match", "", "delete only the match with this game id")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropMatch != "" {
		return dropOne(dropMatch)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	existed, err := storage.Remove(dbPath)
	if err != nil {
		return fmt.Errorf("remove database: %w", err)
	}
	if !existed {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropOne(arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid game id %q: %w", arg, err)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete game %d from %s\n", id, dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.DeleteMatch(id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !ok {
		fmt.Fprintf(os.Stdout, "Game %d is not stored, nothing to drop.\n", id)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted game %d\n", id)
	return nil
}
