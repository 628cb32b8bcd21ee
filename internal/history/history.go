// Package history replays matches in chronological order through a rating
// algorithm and keeps the rating snapshot at every match boundary.
package history

import (
	"sort"

	"github.com/samber/lo"

	"github.com/pable/lq-ratings/internal/model"
	"github.com/pable/lq-ratings/internal/rating"
)

// History is the rating trajectory of a match set. Snapshot(0) is the state
// before the earliest match; Snapshot(i) and Snapshot(i+1) bracket Match(i).
// It is read-only once built.
type History struct {
	alg       rating.Algorithm
	matches   []*model.Match
	snapshots []*Snapshot
}

// Build sorts matches by creation time (ties by id) and folds them through alg.
// A nil start begins from an empty snapshot.
func Build(matches []*model.Match, alg rating.Algorithm, start *Snapshot) *History {
	ordered := append([]*model.Match(nil), matches...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreationTime != ordered[j].CreationTime {
			return ordered[i].CreationTime < ordered[j].CreationTime
		}
		return ordered[i].ID < ordered[j].ID
	})

	if start == nil {
		start = NewSnapshot(alg.Default())
	}
	h := &History{
		alg:       alg,
		matches:   ordered,
		snapshots: make([]*Snapshot, 1, len(ordered)+1),
	}
	h.snapshots[0] = start

	cur := start
	for _, m := range ordered {
		updates := alg.Update(roster(cur, m.Winning), roster(cur, m.Losing))
		cur = cur.With(updates, m.Names())
		h.snapshots = append(h.snapshots, cur)
	}
	return h
}

func roster(s *Snapshot, t model.Team) []rating.Entry {
	return lo.Map(t.Members, func(name string, _ int) rating.Entry {
		return rating.Entry{Name: name, Rating: s.Get(name)}
	})
}

// Algorithm is the algorithm the history was built with.
func (h *History) Algorithm() rating.Algorithm { return h.alg }

// Len is the number of snapshots, one more than the number of matches.
func (h *History) Len() int { return len(h.snapshots) }

// Matches returns the replayed matches in chronological order.
func (h *History) Matches() []*model.Match {
	return append([]*model.Match(nil), h.matches...)
}

// Match returns the i-th match in chronological order.
func (h *History) Match(i int) *model.Match { return h.matches[i] }

// Snapshot returns the i-th snapshot.
func (h *History) Snapshot(i int) *Snapshot { return h.snapshots[i] }

// Before is the snapshot immediately before match i.
func (h *History) Before(i int) *Snapshot { return h.snapshots[i] }

// After is the snapshot immediately after match i.
func (h *History) After(i int) *Snapshot { return h.snapshots[i+1] }

// Latest is the snapshot after the most recent match.
func (h *History) Latest() *Snapshot { return h.snapshots[len(h.snapshots)-1] }

// IndexOf returns the chronological index of the match with the given id.
func (h *History) IndexOf(id int64) (int, bool) {
	_, i, ok := lo.FindIndexOf(h.matches, func(m *model.Match) bool { return m.ID == id })
	return i, ok
}

// Point is a player's rating after one of their matches.
type Point struct {
	Index  int // chronological match index
	Match  *model.Match
	Before rating.Rating
	After  rating.Rating
}

// Trajectory returns the rating change for every match name played, oldest first.
func (h *History) Trajectory(name string) []Point {
	var out []Point
	for i, m := range h.matches {
		if !m.Has(name) {
			continue
		}
		out = append(out, Point{
			Index:  i,
			Match:  m,
			Before: h.Before(i).Get(name),
			After:  h.After(i).Get(name),
		})
	}
	return out
}
