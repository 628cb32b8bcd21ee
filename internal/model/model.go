package model

import "time"

// DefaultRosterSize is the number of players per team in a regular custom game.
const DefaultRosterSize = 5

// Multikills counts double/triple/quadra/penta kills.
type Multikills struct {
	Double, Triple, Quadra, Penta int
}

// Add returns the component-wise sum of m and o.
func (m Multikills) Add(o Multikills) Multikills {
	return Multikills{
		Double: m.Double + o.Double,
		Triple: m.Triple + o.Triple,
		Quadra: m.Quadra + o.Quadra,
		Penta:  m.Penta + o.Penta,
	}
}

// Participant is one player's line in a single match.
type Participant struct {
	Name     string
	TeamID   int
	Champion string
	Win      bool

	Kills, Deaths, Assists int
	Multikills             Multikills

	Level             int
	DamageToChampions int
	CS                int // lane minions + neutral monsters
}

// CSPerMinute returns creep score per minute over a match of the given duration.
func (p *Participant) CSPerMinute(durationSec int) float64 {
	if durationSec <= 0 {
		return 0
	}
	return float64(p.CS) / (float64(durationSec) / 60)
}

// Team is one side of a match.
type Team struct {
	ID      int
	Members []string // player names, in participant order
	Win     bool

	Towers, Inhibitors int
	Dragons, Heralds   int
	Barons             int

	Bans []string // champion names
}

// Match is a normalized, validated match record. It is never mutated after
// the parser builds it.
type Match struct {
	ID           int64
	CreationTime float64 // epoch seconds
	Duration     int     // seconds
	GameMode     string

	Participants map[string]*Participant

	Losing  Team
	Winning Team
}

// Created returns the creation timestamp as a time.Time.
func (m *Match) Created() time.Time {
	sec := int64(m.CreationTime)
	nsec := int64((m.CreationTime - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Names returns every participant name, winners first, in roster order.
func (m *Match) Names() []string {
	out := make([]string, 0, len(m.Winning.Members)+len(m.Losing.Members))
	out = append(out, m.Winning.Members...)
	return append(out, m.Losing.Members...)
}

// Has reports whether name played in the match.
func (m *Match) Has(name string) bool {
	_, ok := m.Participants[name]
	return ok
}

// TeamKills sums the kills of every member of t.
func (m *Match) TeamKills(t Team) int {
	n := 0
	for _, name := range t.Members {
		if p, ok := m.Participants[name]; ok {
			n += p.Kills
		}
	}
	return n
}

// Summary condenses the match into a MatchSummary row.
func (m *Match) Summary() MatchSummary {
	return MatchSummary{
		ID:           m.ID,
		CreationTime: m.CreationTime,
		Duration:     m.Duration,
		GameMode:     m.GameMode,
		WinningTeam:  m.Winning.ID,
		LosingTeam:   m.Losing.ID,
		WinnerKills:  m.TeamKills(m.Winning),
		LoserKills:   m.TeamKills(m.Losing),
		Players:      len(m.Participants),
	}
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	ID           int64
	CreationTime float64
	Duration     int
	GameMode     string
	WinningTeam  int
	LosingTeam   int
	WinnerKills  int
	LoserKills   int
	Players      int
}

// Created returns the creation timestamp as a time.Time.
func (s *MatchSummary) Created() time.Time {
	return time.Unix(int64(s.CreationTime), 0)
}
