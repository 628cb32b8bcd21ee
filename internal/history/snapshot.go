package history

import "github.com/pable/lq-ratings/internal/rating"

// Snapshot is an immutable map from player name to rating at one point in
// match history. Names that were never rated read as the algorithm default.
type Snapshot struct {
	def     rating.Rating
	ratings map[string]rating.Rating
	order   []string // first-rated order, used to break leaderboard ties
}

// NewSnapshot returns an empty snapshot whose unseen players read as def.
func NewSnapshot(def rating.Rating) *Snapshot {
	return &Snapshot{def: def, ratings: map[string]rating.Rating{}}
}

// Get returns name's rating, or the default when name has none.
func (s *Snapshot) Get(name string) rating.Rating {
	if r, ok := s.ratings[name]; ok {
		return r
	}
	return s.def
}

// Has reports whether name has an explicit rating.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.ratings[name]
	return ok
}

// Default is the rating reported for unseen names.
func (s *Snapshot) Default() rating.Rating { return s.def }

// Len is the number of rated players.
func (s *Snapshot) Len() int { return len(s.ratings) }

// Names returns rated players in the order they were first rated.
func (s *Snapshot) Names() []string {
	return append([]string(nil), s.order...)
}

// With returns a copy of s with updates applied. New names are appended in
// the order given by names; names absent from updates are ignored.
func (s *Snapshot) With(updates map[string]rating.Rating, names []string) *Snapshot {
	next := &Snapshot{
		def:     s.def,
		ratings: make(map[string]rating.Rating, len(s.ratings)+len(updates)),
		order:   make([]string, len(s.order), len(s.order)+len(updates)),
	}
	copy(next.order, s.order)
	for name, r := range s.ratings {
		next.ratings[name] = r
	}
	for _, name := range names {
		r, ok := updates[name]
		if !ok {
			continue
		}
		if _, seen := next.ratings[name]; !seen {
			next.order = append(next.order, name)
		}
		next.ratings[name] = r
	}
	return next
}
