package rating

import (
	"fmt"
	"math"

	openskill "github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"
)

const (
	DefaultSkillMu    = 1500.0
	DefaultSkillSigma = 500.0

	// ordinalZ is how many standard deviations Ordinal subtracts from the mean.
	ordinalZ = 3
)

// Skill is a belief over a player's skill: mean and uncertainty.
type Skill struct {
	Mu    float64
	Sigma float64
}

func (s Skill) String() string {
	return fmt.Sprintf("%04d±%04d", int(math.Round(s.Mu)), int(math.Round(s.Sigma)))
}

// SkillConfig configures the Bayesian team skill algorithm. A zero Beta
// becomes Sigma/2 and a zero Tau becomes Sigma/100. Draws are never produced.
type SkillConfig struct {
	Mu    float64
	Sigma float64
	Beta  float64
	Tau   float64
}

// SkillSystem rates two-team matches with a Weng-Lin (OpenSkill) update, the
// TrueSkill-style factor model with winner rank 0 and loser rank 1.
type SkillSystem struct {
	mu, sigma, beta, tau float64
}

// NewSkill returns a SkillSystem. The zero SkillConfig selects 1500 / 500.
func NewSkill(cfg SkillConfig) *SkillSystem {
	if cfg == (SkillConfig{}) {
		cfg = DefaultConfig().Skill
	}
	return newSkill(cfg)
}

func newSkill(cfg SkillConfig) *SkillSystem {
	if cfg.Beta == 0 {
		cfg.Beta = cfg.Sigma / 2
	}
	if cfg.Tau == 0 {
		cfg.Tau = cfg.Sigma / 100
	}
	return &SkillSystem{mu: cfg.Mu, sigma: cfg.Sigma, beta: cfg.Beta, tau: cfg.Tau}
}

// Config returns the effective parameters.
func (s *SkillSystem) Config() SkillConfig {
	return SkillConfig{Mu: s.mu, Sigma: s.sigma, Beta: s.beta, Tau: s.tau}
}

func (s *SkillSystem) Name() string { return "skill" }

func (s *SkillSystem) Default() Rating { return Skill{Mu: s.mu, Sigma: s.sigma} }

// Key orders by mean, then by lower uncertainty.
func (s *SkillSystem) Key(r Rating) Key {
	sk := asSkill(r)
	return Key{sk.Mu, -sk.Sigma}
}

func (s *SkillSystem) TeamRating(rs []Rating) Rating {
	if len(rs) == 0 {
		return s.Default()
	}
	var mu, sigma float64
	for _, r := range rs {
		sk := asSkill(r)
		mu += sk.Mu
		sigma += sk.Sigma
	}
	n := float64(len(rs))
	return Skill{Mu: mu / n, Sigma: sigma / n}
}

func (s *SkillSystem) Update(winners, losers []Entry) map[string]Rating {
	out := make(map[string]Rating, len(winners)+len(losers))
	if len(winners) == 0 || len(losers) == 0 {
		return out
	}

	// Teams are passed in finishing order, so the winners take first place.
	rated := openskill.Rate([]types.Team{s.team(winners), s.team(losers)}, s.options())
	for i, e := range winners {
		out[e.Name] = fromOpenSkill(rated[0][i])
	}
	for i, e := range losers {
		out[e.Name] = fromOpenSkill(rated[1][i])
	}
	return out
}

func (s *SkillSystem) WinProbability(a, b []Rating) float64 {
	ta := make(types.Team, 0, len(a))
	for _, r := range a {
		ta = append(ta, s.toOpenSkill(asSkill(r)))
	}
	tb := make(types.Team, 0, len(b))
	for _, r := range b {
		tb = append(tb, s.toOpenSkill(asSkill(r)))
	}
	return openskill.PredictWin([]types.Team{ta, tb}, s.options())[0]
}

// Ordinal is the conservative skill estimate mu - z*sigma.
func (s *SkillSystem) Ordinal(r Rating) float64 {
	return openskill.Ordinal(s.toOpenSkill(asSkill(r)))
}

func (s *SkillSystem) options() *types.OpenSkillOptions {
	mu, sigma, beta, tau := s.mu, s.sigma, s.beta, s.tau
	return &types.OpenSkillOptions{
		Mu:    &mu,
		Sigma: &sigma,
		Beta:  &beta,
		Tau:   &tau,
	}
}

func (s *SkillSystem) team(es []Entry) types.Team {
	t := make(types.Team, 0, len(es))
	for _, e := range es {
		t = append(t, s.toOpenSkill(asSkill(e.Rating)))
	}
	return t
}

func (s *SkillSystem) toOpenSkill(sk Skill) types.Rating {
	z := ordinalZ
	return openskill.NewWithOptions(&types.OpenSkillOptions{
		Mu:    &sk.Mu,
		Sigma: &sk.Sigma,
		Z:     &z,
	})
}

func fromOpenSkill(r types.Rating) Skill {
	return Skill{Mu: r.Mu, Sigma: r.Sigma}
}

func asSkill(r Rating) Skill {
	sk, ok := r.(Skill)
	if !ok {
		panic(fmt.Sprintf("rating: %T is not a Skill rating", r))
	}
	return sk
}
