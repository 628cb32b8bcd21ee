package rating

import (
	"fmt"
	"math"
	"strconv"
)

const (
	DefaultEloStart = 1500.0
	DefaultEloK     = 32.0
)

// Elo is a single-scalar rating.
type Elo float64

func (e Elo) String() string {
	return strconv.Itoa(int(math.Round(float64(e))))
}

// EloConfig configures the pairwise algorithm.
type EloConfig struct {
	Start float64
	K     float64
}

// EloSystem treats each roster as one pseudo-player rated at the roster mean
// and moves every member by the same K*(1-E).
type EloSystem struct {
	start Elo
	k     float64
}

// NewElo returns an EloSystem. The zero EloConfig selects 1500 / 32; any other
// value is used as given.
func NewElo(cfg EloConfig) *EloSystem {
	if cfg == (EloConfig{}) {
		cfg = DefaultConfig().Elo
	}
	return newElo(cfg)
}

func newElo(cfg EloConfig) *EloSystem {
	return &EloSystem{start: Elo(cfg.Start), k: cfg.K}
}

func (s *EloSystem) Name() string { return "elo" }

func (s *EloSystem) Default() Rating { return s.start }

func (s *EloSystem) Key(r Rating) Key { return Key{float64(asElo(r)), 0} }

func (s *EloSystem) TeamRating(rs []Rating) Rating {
	if len(rs) == 0 {
		return s.start
	}
	var sum float64
	for _, r := range rs {
		sum += float64(asElo(r))
	}
	return Elo(sum / float64(len(rs)))
}

// Expected is the logistic expected score of a player rated winner against
// one rated loser.
func Expected(winner, loser float64) float64 {
	return 1 / (1 + math.Pow(10, (loser-winner)/400))
}

// Delta is the amount every winner gains (and every loser drops) when a roster
// averaging winner beats one averaging loser.
func (s *EloSystem) Delta(winner, loser float64) float64 {
	return s.k * (1 - Expected(winner, loser))
}

func (s *EloSystem) Update(winners, losers []Entry) map[string]Rating {
	out := make(map[string]Rating, len(winners)+len(losers))
	if len(winners) == 0 || len(losers) == 0 {
		return out
	}
	d := s.Delta(meanElo(winners), meanElo(losers))
	for _, e := range winners {
		out[e.Name] = asElo(e.Rating) + Elo(d)
	}
	for _, e := range losers {
		out[e.Name] = asElo(e.Rating) - Elo(d)
	}
	return out
}

func (s *EloSystem) WinProbability(a, b []Rating) float64 {
	return Expected(float64(asElo(s.TeamRating(a))), float64(asElo(s.TeamRating(b))))
}

func meanElo(es []Entry) float64 {
	var sum float64
	for _, e := range es {
		sum += float64(asElo(e.Rating))
	}
	return sum / float64(len(es))
}

func asElo(r Rating) Elo {
	e, ok := r.(Elo)
	if !ok {
		panic(fmt.Sprintf("rating: %T is not an Elo rating", r))
	}
	return e
}
