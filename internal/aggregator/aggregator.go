package aggregator

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/pable/lq-ratings/internal/history"
	"github.com/pable/lq-ratings/internal/model"
	"github.com/pable/lq-ratings/internal/rating"
)

// AllChampions is the champion filter that matches every game.
const AllChampions = "all"

// Standing is one row of a leaderboard.
type Standing struct {
	Rank   int
	Name   string
	Rating rating.Rating
}

// Leaderboard ranks every player in snap plus any extra names (read at their
// default rating) by the algorithm's key, highest first. Ties keep the order
// in which players were first rated, then the order of names.
func Leaderboard(snap *history.Snapshot, alg rating.Algorithm, names ...string) []Standing {
	all := snap.Names()
	seen := make(map[string]struct{}, len(all)+len(names))
	for _, n := range all {
		seen[n] = struct{}{}
	}
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		all = append(all, n)
	}

	board := make([]Standing, len(all))
	keys := make([]rating.Key, len(all))
	for i, n := range all {
		r := snap.Get(n)
		board[i] = Standing{Name: n, Rating: r}
		keys[i] = alg.Key(r)
	}
	idx := lo.Range(len(all))
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]].Greater(keys[idx[b]]) })

	out := make([]Standing, len(idx))
	for pos, i := range idx {
		out[pos] = board[i]
		out[pos].Rank = pos + 1
	}
	return out
}

// Ranks maps each name on board to its 1-based rank.
func Ranks(board []Standing) map[string]int {
	return lo.SliceToMap(board, func(s Standing) (string, int) { return s.Name, s.Rank })
}

// KDAString renders (kills+assists)/deaths with two decimals. A deathless
// line is "Perfect", or "0.00" when there was nothing to show for it either.
func KDAString(kills, deaths, assists float64) string {
	if deaths == 0 {
		if kills+assists == 0 {
			return "0.00"
		}
		return "Perfect"
	}
	return fmt.Sprintf("%.2f", (kills+assists)/deaths)
}

// KDA is an average kills/deaths/assists line.
type KDA struct {
	Kills, Deaths, Assists float64
}

// String formats the line the same way KDAString does.
func (k KDA) String() string { return KDAString(k.Kills, k.Deaths, k.Assists) }

// ChampionCount is how often a player picked one champion.
type ChampionCount struct {
	Champion string
	Games    int
	Wins     int
}

// PlayerStats derives cumulative statistics for one player from the matches
// they appear in. Nothing is cached; every call walks the match list.
type PlayerStats struct {
	Name    string
	matches []*model.Match
}

// NewPlayerStats keeps the subset of matches that name played.
func NewPlayerStats(name string, matches []*model.Match) *PlayerStats {
	return &PlayerStats{
		Name:    name,
		matches: lo.Filter(matches, func(m *model.Match, _ int) bool { return m.Has(name) }),
	}
}

// Matches returns the player's matches on champ ("" or "all" for every game).
func (s *PlayerStats) Matches(champ string) []*model.Match {
	if champ == "" || champ == AllChampions {
		return append([]*model.Match(nil), s.matches...)
	}
	return lo.Filter(s.matches, func(m *model.Match, _ int) bool {
		return m.Participants[s.Name].Champion == champ
	})
}

// WinLoss counts wins and losses on champ.
func (s *PlayerStats) WinLoss(champ string) (wins, losses int) {
	for _, m := range s.Matches(champ) {
		if m.Participants[s.Name].Win {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}

// AvgKDA averages kills, deaths and assists on champ; zero with no games.
func (s *PlayerStats) AvgKDA(champ string) KDA {
	ms := s.Matches(champ)
	if len(ms) == 0 {
		return KDA{}
	}
	var k, d, a int
	for _, m := range ms {
		p := m.Participants[s.Name]
		k += p.Kills
		d += p.Deaths
		a += p.Assists
	}
	n := float64(len(ms))
	return KDA{Kills: float64(k) / n, Deaths: float64(d) / n, Assists: float64(a) / n}
}

// Multikills sums multikill counts on champ.
func (s *PlayerStats) Multikills(champ string) model.Multikills {
	var total model.Multikills
	for _, m := range s.Matches(champ) {
		total = total.Add(m.Participants[s.Name].Multikills)
	}
	return total
}

// Champions lists every champion played, most games first, then by name.
func (s *PlayerStats) Champions() []ChampionCount {
	byChamp := map[string]*ChampionCount{}
	for _, m := range s.matches {
		p := m.Participants[s.Name]
		c, ok := byChamp[p.Champion]
		if !ok {
			c = &ChampionCount{Champion: p.Champion}
			byChamp[p.Champion] = c
		}
		c.Games++
		if p.Win {
			c.Wins++
		}
	}
	out := make([]ChampionCount, 0, len(byChamp))
	for _, c := range byChamp {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].Champion < out[j].Champion
	})
	return out
}

// Players returns every name that appears in matches, sorted.
func Players(matches []*model.Match) []string {
	names := lo.Uniq(lo.FlatMap(matches, func(m *model.Match, _ int) []string { return m.Names() }))
	sort.Strings(names)
	return names
}
