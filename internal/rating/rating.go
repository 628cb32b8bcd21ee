// Package rating implements the interchangeable rating algorithms used to
// replay match history: a pairwise Elo update and a Bayesian team skill model.
package rating

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAlgorithm is returned by New for an unrecognised algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown rating algorithm")
	// ErrInvalidConfig is returned by New for tunables no update can work with.
	ErrInvalidConfig = errors.New("invalid rating config")
)

// Rating is an algorithm-specific rating value: Elo or Skill.
type Rating interface {
	fmt.Stringer
}

// Key orders ratings on a leaderboard. Keys compare lexicographically and
// larger keys rank higher.
type Key [2]float64

// Greater reports whether k ranks strictly above o.
func (k Key) Greater(o Key) bool {
	if k[0] != o[0] {
		return k[0] > o[0]
	}
	return k[1] > o[1]
}

// Entry is one player's pre-match rating handed to Update.
type Entry struct {
	Name   string
	Rating Rating
}

// Algorithm is the contract shared by every rating system.
type Algorithm interface {
	// Name identifies the algorithm ("elo", "skill").
	Name() string
	// Default is the rating of a player with no history.
	Default() Rating
	// Key projects r onto the leaderboard ordering.
	Key(r Rating) Key
	// TeamRating aggregates a roster into one rating (per-parameter mean).
	TeamRating(rs []Rating) Rating
	// Update returns new ratings for every named winner and loser. Inputs are
	// not modified.
	Update(winners, losers []Entry) map[string]Rating
}

// Predictor is implemented by algorithms that can estimate a match outcome.
type Predictor interface {
	// WinProbability is the chance that team a beats team b.
	WinProbability(a, b []Rating) float64
}

// Config carries the tunables of every algorithm.
type Config struct {
	Elo   EloConfig
	Skill SkillConfig
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		Elo:   EloConfig{Start: DefaultEloStart, K: DefaultEloK},
		Skill: SkillConfig{Mu: DefaultSkillMu, Sigma: DefaultSkillSigma},
	}
}

// New builds the algorithm called name from cfg as given, so explicit zeros
// such as a start rating or K of 0 are honoured. Start from DefaultConfig to
// override single fields.
func New(name string, cfg Config) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "elo", "pairwise":
		if cfg.Elo.K < 0 {
			return nil, fmt.Errorf("%w: elo K %v is negative", ErrInvalidConfig, cfg.Elo.K)
		}
		return newElo(cfg.Elo), nil
	case "skill", "trueskill", "openskill", "bayesian":
		sk := cfg.Skill
		if sk.Sigma <= 0 {
			return nil, fmt.Errorf("%w: sigma %v must be positive", ErrInvalidConfig, sk.Sigma)
		}
		if sk.Beta < 0 || sk.Tau < 0 {
			return nil, fmt.Errorf("%w: beta and tau must not be negative", ErrInvalidConfig)
		}
		return newSkill(sk), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
