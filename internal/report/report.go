package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/lq-ratings/internal/aggregator"
	"github.com/pable/lq-ratings/internal/history"
	"github.com/pable/lq-ratings/internal/model"
	"github.com/pable/lq-ratings/internal/rating"
)

var (
	cUp     = color.New(color.FgGreen)
	cDown   = color.New(color.FgRed)
	cHeader = color.New(color.FgCyan, color.Bold)
)

// ordinaler is implemented by algorithms with a conservative skill estimate.
type ordinaler interface {
	Ordinal(r rating.Rating) float64
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// FormatDuration renders seconds as "31m05s".
func FormatDuration(sec int) string {
	return fmt.Sprintf("%dm%02ds", sec/60, sec%60)
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// Change is the signed movement from before to after: the scalar for Elo,
// the mean for Skill.
func Change(before, after rating.Rating) float64 {
	switch b := before.(type) {
	case rating.Elo:
		if a, ok := after.(rating.Elo); ok {
			return float64(a - b)
		}
	case rating.Skill:
		if a, ok := after.(rating.Skill); ok {
			return a.Mu - b.Mu
		}
	}
	return 0
}

func signed(v float64) string {
	s := fmt.Sprintf("%+.0f", v)
	switch {
	case s == "+0" || s == "-0":
		return "0"
	case v > 0:
		return cUp.Sprint(s)
	default:
		return cDown.Sprint(s)
	}
}

func rankMove(before, after int) string {
	s := fmt.Sprintf("%02d → %02d", before, after)
	switch {
	case after < before:
		return cUp.Sprint(s)
	case after > before:
		return cDown.Sprint(s)
	}
	return s
}

func line(k, d, a int) string {
	return fmt.Sprintf("%d/%d/%d", k, d, a)
}

func multikills(m model.Multikills) string {
	return fmt.Sprintf("%d/%d/%d/%d", m.Double, m.Triple, m.Quadra, m.Penta)
}

func winPct(w, l int) string {
	if w+l == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(w)/float64(w+l)*100)
}

func result(win bool) string {
	if win {
		return "W"
	}
	return "L"
}

// PrintMatchList prints one row per stored match.
func PrintMatchList(w io.Writer, list []model.MatchSummary) error {
	table := newTable(w)
	table.Header("GAME_ID", "DATE", "DURATION", "MODE", "WINNER", "KILLS", "PLAYERS")
	for _, s := range list {
		err := table.Append(
			strconv.FormatInt(s.ID, 10),
			formatDate(s.Created()),
			FormatDuration(s.Duration),
			s.GameMode,
			strconv.Itoa(s.WinningTeam),
			fmt.Sprintf("%d-%d", s.WinnerKills, s.LoserKills),
			strconv.Itoa(s.Players),
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintLeaderboard prints board with each player's record. Players with fewer
// than minGames games are left out; ranks are not renumbered.
func PrintLeaderboard(w io.Writer, alg rating.Algorithm, board []aggregator.Standing, stats map[string]*aggregator.PlayerStats, minGames int) error {
	ord, hasOrd := alg.(ordinaler)

	table := newTable(w)
	header := []any{"#", "PLAYER", "RATING"}
	if hasOrd {
		header = append(header, "ORDINAL")
	}
	header = append(header, "GAMES", "W/L", "WIN%", "AVG K/D/A", "KDA", "D/T/Q/P")
	table.Header(header...)

	for _, s := range board {
		ps, ok := stats[s.Name]
		if !ok {
			ps = aggregator.NewPlayerStats(s.Name, nil)
		}
		wins, losses := ps.WinLoss(aggregator.AllChampions)
		if wins+losses < minGames {
			continue
		}
		kda := ps.AvgKDA(aggregator.AllChampions)

		row := []any{strconv.Itoa(s.Rank), s.Name, s.Rating.String()}
		if hasOrd {
			row = append(row, fmt.Sprintf("%.0f", ord.Ordinal(s.Rating)))
		}
		row = append(row,
			strconv.Itoa(wins+losses),
			fmt.Sprintf("%d/%d", wins, losses),
			winPct(wins, losses),
			fmt.Sprintf("%.1f/%.1f/%.1f", kda.Kills, kda.Deaths, kda.Assists),
			kda.String(),
			multikills(ps.Multikills(aggregator.AllChampions)),
		)
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintPlayer prints a player's card: rating and record, filtered to champ,
// followed by the champions they have played.
func PrintPlayer(w io.Writer, ps *aggregator.PlayerStats, standing aggregator.Standing, champ string) error {
	if champ == "" {
		champ = aggregator.AllChampions
	}
	wins, losses := ps.WinLoss(champ)
	kda := ps.AvgKDA(champ)
	mk := ps.Multikills(champ)

	cHeader.Fprintf(w, "\n%s", ps.Name)
	fmt.Fprintf(w, "  |  Rating %s (#%d)  |  Champion: %s\n", standing.Rating, standing.Rank, champ)
	fmt.Fprintf(w, "W/L %d/%d [%d]  |  KDA %.1f/%.1f/%.1f (%s)  |  (D: %d, T: %d, Q: %d, P: %d)\n\n",
		wins, losses, wins+losses,
		kda.Kills, kda.Deaths, kda.Assists, kda,
		mk.Double, mk.Triple, mk.Quadra, mk.Penta)

	table := newTable(w)
	table.Header("CHAMPION", "GAMES", "W/L", "WIN%", "AVG K/D/A", "KDA")
	for _, c := range ps.Champions() {
		ck := ps.AvgKDA(c.Champion)
		err := table.Append(
			c.Champion,
			strconv.Itoa(c.Games),
			fmt.Sprintf("%d/%d", c.Wins, c.Games-c.Wins),
			winPct(c.Wins, c.Games-c.Wins),
			fmt.Sprintf("%.1f/%.1f/%.1f", ck.Kills, ck.Deaths, ck.Assists),
			ck.String(),
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintMatch prints a match report: a header line, then winners and losers
// with each player's line and rating/rank movement.
func PrintMatch(w io.Writer, d aggregator.MatchDelta) error {
	m := d.Match
	fmt.Fprintf(w, "\nGame %d  |  %s  |  %s  |  %s",
		m.ID, formatDate(m.Created()), FormatDuration(m.Duration), m.GameMode)
	if d.HasWinChance {
		fmt.Fprintf(w, "  |  Winners' chance %.0f%%", d.WinChance*100)
	}
	fmt.Fprintln(w)

	for _, td := range []struct {
		label string
		delta aggregator.TeamDelta
	}{{"WINNERS", d.Winning}, {"LOSERS", d.Losing}} {
		if err := printTeam(w, m, td.label, td.delta); err != nil {
			return err
		}
	}
	return nil
}

func printTeam(w io.Writer, m *model.Match, label string, td aggregator.TeamDelta) error {
	t := td.Team
	bans := "none"
	if len(t.Bans) > 0 {
		bans = strings.Join(t.Bans, " ")
	}
	fmt.Fprintln(w)
	cHeader.Fprintf(w, "%s", label)
	fmt.Fprintf(w, "  Rating %s → %s  |  %dT %dI %dD %dRH %dB  |  Banned %s\n",
		td.Before, td.After, t.Towers, t.Inhibitors, t.Dragons, t.Heralds, t.Barons, bans)

	table := newTable(w)
	table.Header("PLAYER", "CHAMPION", "LVL", "K/D/A", "KDA", "DAMAGE", "CS", "CS/M", "RATING", "Δ", "RANK")
	for _, pd := range td.Players {
		p := m.Participants[pd.Name]
		err := table.Append(
			pd.Name,
			p.Champion,
			strconv.Itoa(p.Level),
			line(p.Kills, p.Deaths, p.Assists),
			aggregator.KDAString(float64(p.Kills), float64(p.Deaths), float64(p.Assists)),
			strconv.Itoa(p.DamageToChampions),
			strconv.Itoa(p.CS),
			fmt.Sprintf("%.1f", p.CSPerMinute(m.Duration)),
			fmt.Sprintf("%s → %s", pd.Before, pd.After),
			signed(Change(pd.Before, pd.After)),
			rankMove(pd.RankBefore, pd.RankAfter),
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintDeltas prints a compact history of team rating movement, one row per match.
func PrintDeltas(w io.Writer, ds []aggregator.MatchDelta) error {
	table := newTable(w)
	table.Header("GAME_ID", "DATE", "DURATION", "WINNERS", "Δ", "LOSERS", "Δ", "CHANCE")
	for _, d := range ds {
		chance := "-"
		if d.HasWinChance {
			chance = fmt.Sprintf("%.0f%%", d.WinChance*100)
		}
		err := table.Append(
			strconv.FormatInt(d.Match.ID, 10),
			formatDate(d.Match.Created()),
			FormatDuration(d.Match.Duration),
			fmt.Sprintf("%s → %s", d.Winning.Before, d.Winning.After),
			signed(Change(d.Winning.Before, d.Winning.After)),
			fmt.Sprintf("%s → %s", d.Losing.Before, d.Losing.After),
			signed(Change(d.Losing.Before, d.Losing.After)),
			chance,
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintTrend prints a player's rating after each of their matches, oldest first.
func PrintTrend(w io.Writer, name string, points []history.Point) error {
	cHeader.Fprintf(w, "\n%s", name)
	fmt.Fprintf(w, "  |  %d matches\n\n", len(points))

	table := newTable(w)
	table.Header("#", "DATE", "GAME_ID", "CHAMPION", "RESULT", "K/D/A", "BEFORE", "AFTER", "Δ")
	for i, pt := range points {
		p := pt.Match.Participants[name]
		err := table.Append(
			strconv.Itoa(i+1),
			formatDate(pt.Match.Created()),
			strconv.FormatInt(pt.Match.ID, 10),
			p.Champion,
			result(p.Win),
			line(p.Kills, p.Deaths, p.Assists),
			pt.Before.String(),
			pt.After.String(),
			signed(Change(pt.Before, pt.After)),
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}
