package rating

import (
	"errors"
	"math"
	"testing"
)

func entries(prefix string, rs ...Rating) []Entry {
	out := make([]Entry, len(rs))
	for i, r := range rs {
		out[i] = Entry{Name: prefix + string(rune('1'+i)), Rating: r}
	}
	return out
}

func elos(vals ...float64) []Rating {
	out := make([]Rating, len(vals))
	for i, v := range vals {
		out[i] = Elo(v)
	}
	return out
}

func TestEloZeroSum(t *testing.T) {
	s := NewElo(EloConfig{})
	w := entries("w", elos(1500, 1600, 1420, 1510, 1380)...)
	l := entries("l", elos(1450, 1700, 1500, 1500, 1390)...)

	out := s.Update(w, l)
	if len(out) != 10 {
		t.Fatalf("expected 10 updated ratings, got %d", len(out))
	}
	var sum float64
	for _, e := range append(w, l...) {
		sum += float64(out[e.Name].(Elo)) - float64(e.Rating.(Elo))
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("equal rosters should be zero-sum, total delta %f", sum)
	}
}

func TestEloEvenMatchMovesHalfK(t *testing.T) {
	s := NewElo(EloConfig{Start: 1500, K: 32})
	out := s.Update(entries("w", elos(1500)...), entries("l", elos(1500)...))
	if got := out["w1"].(Elo); got != 1516 {
		t.Errorf("winner: want 1516, got %f", float64(got))
	}
	if got := out["l1"].(Elo); got != 1484 {
		t.Errorf("loser: want 1484, got %f", float64(got))
	}
}

func TestEloUpsetMovesMore(t *testing.T) {
	s := NewElo(EloConfig{})
	favoured := s.Delta(1700, 1500)
	upset := s.Delta(1500, 1700)
	if !(favoured < upset) {
		t.Errorf("favoured win delta %f should be smaller than upset delta %f", favoured, upset)
	}
	if favoured <= 0 || upset >= 32 {
		t.Errorf("deltas out of (0, K): favoured=%f upset=%f", favoured, upset)
	}
}

func TestEloUpdateDoesNotMutateInput(t *testing.T) {
	s := NewElo(EloConfig{})
	w := entries("w", elos(1500, 1500)...)
	l := entries("l", elos(1500, 1500)...)
	s.Update(w, l)
	if w[0].Rating.(Elo) != 1500 || l[1].Rating.(Elo) != 1500 {
		t.Error("Update must not modify its inputs")
	}
}

func TestEloTeamRatingAndString(t *testing.T) {
	s := NewElo(EloConfig{})
	if got := s.TeamRating(elos(1400, 1600, 1530)).(Elo); math.Abs(float64(got)-1510) > 1e-9 {
		t.Errorf("TeamRating: want 1510, got %f", float64(got))
	}
	if got := Elo(1515.6).String(); got != "1516" {
		t.Errorf("String: want 1516, got %s", got)
	}
	if p := s.WinProbability(elos(1500), elos(1500)); p != 0.5 {
		t.Errorf("WinProbability even: want 0.5, got %f", p)
	}
}

func TestEloEmptyRoster(t *testing.T) {
	if out := NewElo(EloConfig{}).Update(nil, entries("l", elos(1500)...)); len(out) != 0 {
		t.Errorf("empty winners should yield no updates, got %v", out)
	}
}

func TestSkillDefaults(t *testing.T) {
	s := NewSkill(SkillConfig{})
	cfg := s.Config()
	if cfg.Mu != 1500 || cfg.Sigma != 500 || cfg.Beta != 250 || cfg.Tau != 5 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if d := s.Default().(Skill); d.Mu != 1500 || d.Sigma != 500 {
		t.Errorf("Default: got %+v", d)
	}
	if got := (Skill{Mu: 1512.4, Sigma: 487.6}).String(); got != "1512±0488" {
		t.Errorf("String: got %q", got)
	}
}

func TestSkillUpdate(t *testing.T) {
	s := NewSkill(SkillConfig{})
	def := s.Default()
	w := entries("w", def, def, def, def, def)
	l := entries("l", def, def, def, def, def)

	out := s.Update(w, l)
	if len(out) != 10 {
		t.Fatalf("expected 10 ratings, got %d", len(out))
	}
	for _, e := range w {
		sk := out[e.Name].(Skill)
		if sk.Mu <= 1500 {
			t.Errorf("winner %s mu should rise, got %f", e.Name, sk.Mu)
		}
		if sk.Sigma >= 500 {
			t.Errorf("winner %s sigma should shrink, got %f", e.Name, sk.Sigma)
		}
	}
	for _, e := range l {
		if sk := out[e.Name].(Skill); sk.Mu >= 1500 {
			t.Errorf("loser %s mu should fall, got %f", e.Name, sk.Mu)
		}
	}
	if w[0].Rating.(Skill).Mu != 1500 {
		t.Error("Update must not modify its inputs")
	}
}

func TestSkillKeyPrefersLowerSigma(t *testing.T) {
	s := NewSkill(SkillConfig{})
	sure := s.Key(Skill{Mu: 1600, Sigma: 100})
	unsure := s.Key(Skill{Mu: 1600, Sigma: 300})
	better := s.Key(Skill{Mu: 1601, Sigma: 450})
	if !sure.Greater(unsure) {
		t.Error("equal mu: lower sigma should rank higher")
	}
	if !better.Greater(sure) {
		t.Error("higher mu should rank higher regardless of sigma")
	}
	if sure.Greater(sure) {
		t.Error("Greater must be strict")
	}
}

func TestSkillTeamRating(t *testing.T) {
	s := NewSkill(SkillConfig{})
	got := s.TeamRating([]Rating{Skill{Mu: 1400, Sigma: 200}, Skill{Mu: 1600, Sigma: 400}}).(Skill)
	if got.Mu != 1500 || got.Sigma != 300 {
		t.Errorf("TeamRating: want 1500±300, got %+v", got)
	}
}

func TestSkillWinProbabilityFavoursStrongerTeam(t *testing.T) {
	s := NewSkill(SkillConfig{})
	strong := []Rating{Skill{Mu: 1900, Sigma: 100}}
	weak := []Rating{Skill{Mu: 1200, Sigma: 100}}
	if p := s.WinProbability(strong, weak); p <= 0.5 {
		t.Errorf("stronger team should be favoured, got %f", p)
	}
	if s.Ordinal(Skill{Mu: 1500, Sigma: 100}) >= 1500 {
		t.Error("ordinal should sit below mu")
	}
}

func TestNew(t *testing.T) {
	for name, want := range map[string]string{"elo": "elo", "TrueSkill": "skill", " skill ": "skill"} {
		alg, err := New(name, DefaultConfig())
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if alg.Name() != want {
			t.Errorf("New(%q).Name(): want %s, got %s", name, want, alg.Name())
		}
	}
	if _, err := New("glicko", Config{}); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestNewHonoursExplicitZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Elo.Start = 0
	alg, err := New("elo", cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := alg.Default().(Elo); got != 0 {
		t.Errorf("start 0: want 0, got %f", float64(got))
	}

	cfg = DefaultConfig()
	cfg.Elo.K = 0
	alg, err = New("elo", cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := alg.Update(entries("w", elos(1500)...), entries("l", elos(1500)...))
	if out["w1"].(Elo) != 1500 || out["l1"].(Elo) != 1500 {
		t.Errorf("K 0 should freeze ratings, got %v", out)
	}

	cfg = DefaultConfig()
	cfg.Skill.Mu = 0
	alg, err = New("skill", cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d := alg.Default().(Skill); d.Mu != 0 || d.Sigma != DefaultSkillSigma {
		t.Errorf("mu 0: got %+v", d)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	bad := []struct {
		name string
		cfg  Config
	}{
		{"elo", Config{Elo: EloConfig{Start: 1500, K: -1}}},
		{"skill", Config{Skill: SkillConfig{Mu: 1500}}},
		{"skill", Config{Skill: SkillConfig{Mu: 1500, Sigma: 500, Tau: -1}}},
	}
	for _, tc := range bad {
		if _, err := New(tc.name, tc.cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("New(%s, %+v): expected ErrInvalidConfig, got %v", tc.name, tc.cfg, err)
		}
	}
}

func TestMismatchedRatingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for Skill passed to Elo")
		}
	}()
	NewElo(EloConfig{}).Key(Skill{Mu: 1})
}
