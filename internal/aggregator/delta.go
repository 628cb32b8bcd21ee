package aggregator

import (
	"github.com/pable/lq-ratings/internal/history"
	"github.com/pable/lq-ratings/internal/model"
	"github.com/pable/lq-ratings/internal/rating"
)

// PlayerDelta is one participant's rating and rank around a match.
type PlayerDelta struct {
	Name       string
	Before     rating.Rating
	After      rating.Rating
	RankBefore int
	RankAfter  int
}

// TeamDelta is a roster's aggregate rating around a match.
type TeamDelta struct {
	Team    model.Team
	Before  rating.Rating
	After   rating.Rating
	Players []PlayerDelta
}

// MatchDelta describes how one match moved ratings and ranks.
type MatchDelta struct {
	Index   int
	Match   *model.Match
	Winning TeamDelta
	Losing  TeamDelta

	// WinChance is the winners' pre-match win probability, when the
	// algorithm can predict one.
	WinChance    float64
	HasWinChance bool
}

// DeltaAt computes the MatchDelta of the i-th chronological match of h.
// Ranks before the match are taken over the prior snapshot extended with
// every player rated after it, so first-timers get a rank too.
func DeltaAt(h *history.History, i int) MatchDelta {
	alg := h.Algorithm()
	m := h.Match(i)
	before, after := h.Before(i), h.After(i)

	ranksBefore := Ranks(Leaderboard(before, alg, after.Names()...))
	ranksAfter := Ranks(Leaderboard(after, alg))

	team := func(t model.Team) TeamDelta {
		td := TeamDelta{Team: t}
		var rb, ra []rating.Rating
		for _, name := range t.Members {
			pd := PlayerDelta{
				Name:       name,
				Before:     before.Get(name),
				After:      after.Get(name),
				RankBefore: ranksBefore[name],
				RankAfter:  ranksAfter[name],
			}
			td.Players = append(td.Players, pd)
			rb = append(rb, pd.Before)
			ra = append(ra, pd.After)
		}
		td.Before = alg.TeamRating(rb)
		td.After = alg.TeamRating(ra)
		return td
	}

	d := MatchDelta{
		Index:   i,
		Match:   m,
		Winning: team(m.Winning),
		Losing:  team(m.Losing),
	}
	if p, ok := alg.(rating.Predictor); ok {
		d.WinChance = p.WinProbability(ratingsOf(d.Winning), ratingsOf(d.Losing))
		d.HasWinChance = true
	}
	return d
}

// Deltas returns the MatchDelta of every match in h, newest first.
func Deltas(h *history.History) []MatchDelta {
	n := h.Len() - 1
	out := make([]MatchDelta, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, DeltaAt(h, i))
	}
	return out
}

func ratingsOf(td TeamDelta) []rating.Rating {
	out := make([]rating.Rating, len(td.Players))
	for i, p := range td.Players {
		out[i] = p.Before
	}
	return out
}
