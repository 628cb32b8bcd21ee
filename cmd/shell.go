package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/lq-ratings/internal/aggregator"
	"github.com/pable/lq-ratings/internal/history"
	"github.com/pable/lq-ratings/internal/report"
	"github.com/pable/lq-ratings/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. The rating history is built once; type 'reload' after importing. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// session holds the database and the rating history replayed from it.
type session struct {
	db *storage.DB
	h  *history.History
}

func (s *session) reload() error {
	h, err := loadHistory(s.db)
	if err != nil {
		return err
	}
	s.h = h
	return nil
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s := &session{db: db}
	if err := s.reload(); err != nil {
		return err
	}

	cGreeting.Println("lqratings shell")
	cMuted.Printf("%d matches, %s ratings; type 'help' or 'exit'\n", s.h.Len()-1, s.h.Algorithm().Name())
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("lqratings")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, err := splitArgs(line)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "reload":
			if err = s.reload(); err == nil {
				cMuted.Printf("%d matches\n", s.h.Len()-1)
			}
		case "list":
			err = s.list()
		case "leaderboard", "lb":
			err = s.leaderboard(args)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <game-id-prefix>")
				continue
			}
			err = s.show(args[0])
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, `usage: player <name> [champion], quote names with spaces: player "Big Bob" -c Ahri`)
				continue
			}
			err = s.player(args)
		case "trend":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: trend <name>")
				continue
			}
			err = s.trend(args[0])
		case "matches":
			err = s.matches(args)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"leaderboard [min-games]", "current standings"},
		{"show <game-id-prefix>", "a match with rating and rank changes"},
		{"player <name> [champion]", "rating, record and champion pool"},
		{"trend <name>", "rating after every match the player played"},
		{"matches [n]", "rating changes of the n most recent matches"},
		{"reload", "rebuild ratings from the database"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-30s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *session) list() error {
	matches, err := s.db.ListMatches()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return nil
	}
	return report.PrintMatchList(os.Stdout, matches)
}

func (s *session) leaderboard(args []string) error {
	minGames := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid min-games %q", args[0])
		}
		minGames = n
	}
	matches := s.h.Matches()
	board := aggregator.Leaderboard(s.h.Latest(), s.h.Algorithm())
	stats := make(map[string]*aggregator.PlayerStats, len(board))
	for _, st := range board {
		stats[st.Name] = aggregator.NewPlayerStats(st.Name, matches)
	}
	return report.PrintLeaderboard(os.Stdout, s.h.Algorithm(), board, stats, minGames)
}

func (s *session) show(prefix string) error {
	summary, err := s.db.GetMatchByPrefix(prefix)
	if err != nil {
		return err
	}
	if summary == nil {
		return fmt.Errorf("no match found with prefix %q", prefix)
	}
	i, ok := s.h.IndexOf(summary.ID)
	if !ok {
		return fmt.Errorf("match %d was stored after this session started, type 'reload'", summary.ID)
	}
	return report.PrintMatch(os.Stdout, aggregator.DeltaAt(s.h, i))
}

func (s *session) player(args []string) error {
	name, champ, err := playerArgs(args)
	if err != nil {
		return err
	}
	standing, ok := standingsByName(s.h)[name]
	if !ok {
		return fmt.Errorf("no matches found for %s", name)
	}
	return report.PrintPlayer(os.Stdout, aggregator.NewPlayerStats(name, s.h.Matches()), standing, champ)
}

func (s *session) trend(name string) error {
	points := s.h.Trajectory(name)
	if len(points) == 0 {
		return fmt.Errorf("no matches found for %s", name)
	}
	return report.PrintTrend(os.Stdout, name, points)
}

func (s *session) matches(args []string) error {
	n := 3
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		n = v
	}
	ds := aggregator.Deltas(s.h)
	if n > 0 && n < len(ds) {
		ds = ds[:n]
	}
	return report.PrintDeltas(os.Stdout, ds)
}

// splitArgs splits a shell line on whitespace. Double quotes group words, so
// summoner names with spaces stay one token.
func splitArgs(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case !quoted && (r == ' ' || r == '\t'):
			if pending {
				tokens = append(tokens, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if pending {
		tokens = append(tokens, cur.String())
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return tokens, nil
}

// playerArgs reads "player" arguments. The champion comes from -c/--champion
// when given, in which case every other word is the name; otherwise the first
// token is the name and the rest the champion.
func playerArgs(args []string) (name, champ string, err error) {
	champ = aggregator.AllChampions
	var words []string
	withFlag := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c", "--champion":
			if i+1 >= len(args) {
				return "", "", fmt.Errorf("%s needs a champion name", args[i])
			}
			champ = args[i+1]
			withFlag = true
			i++
		default:
			words = append(words, args[i])
		}
	}
	if len(words) == 0 {
		return "", "", fmt.Errorf("missing player name")
	}
	if withFlag {
		return strings.Join(words, " "), champ, nil
	}
	name = words[0]
	if len(words) > 1 {
		champ = strings.Join(words[1:], " ")
	}
	return name, champ, nil
}
