package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pable/lq-ratings/internal/champions"
	"github.com/pable/lq-ratings/internal/model"
)

// ErrMalformedRoster marks a record whose teams cannot be rated: not exactly
// two teams, a team of the wrong size, or a win-flag count other than one.
var ErrMalformedRoster = errors.New("malformed roster")

// RecordError describes why a single match record was rejected.
type RecordError struct {
	GameID int64
	Reason string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("game %d: %v: %s", e.GameID, e.Err, e.Reason)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Record is one raw match JSON document and where it came from.
type Record struct {
	Source string
	Data   []byte
}

// Parser normalizes LCU match-history records into model.Match values.
type Parser struct {
	Champions  champions.Table
	RosterSize int
	Logger     *zap.Logger
}

// New returns a Parser with the default roster size and a no-op logger.
func New(table champions.Table) *Parser {
	return &Parser{
		Champions:  table,
		RosterSize: model.DefaultRosterSize,
		Logger:     zap.NewNop(),
	}
}

// Parse decodes and validates one match record.
func (p *Parser) Parse(data []byte) (*model.Match, error) {
	var raw rawGame
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode match: %w", err)
	}
	return p.normalize(&raw)
}

// normalize builds a Match from a decoded record.
func (p *Parser) normalize(raw *rawGame) (*model.Match, error) {
	malformed := func(format string, args ...any) error {
		return &RecordError{GameID: raw.GameID, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedRoster}
	}

	names := make(map[int]string, len(raw.ParticipantIdentities))
	for _, id := range raw.ParticipantIdentities {
		names[id.ParticipantID] = id.Player.displayName()
	}

	m := &model.Match{
		ID:           raw.GameID,
		CreationTime: float64(raw.GameCreation) / 1000,
		Duration:     raw.GameDuration,
		GameMode:     raw.GameMode,
		Participants: make(map[string]*model.Participant, len(raw.Participants)),
	}

	// Participant order drives roster order.
	order := make([]string, 0, len(raw.Participants))
	for _, rp := range raw.Participants {
		name, ok := names[rp.ParticipantID]
		if !ok || name == "" {
			return nil, malformed("participant %d has no identity", rp.ParticipantID)
		}
		if _, dup := m.Participants[name]; dup {
			return nil, malformed("player %q listed twice", name)
		}
		champ, err := p.Champions.Name(rp.ChampionID)
		if err != nil {
			return nil, fmt.Errorf("game %d participant %q: %w", raw.GameID, name, err)
		}
		s := rp.Stats
		m.Participants[name] = &model.Participant{
			Name:     name,
			TeamID:   rp.TeamID,
			Champion: champ,
			Win:      s.Win,
			Kills:    s.Kills,
			Deaths:   s.Deaths,
			Assists:  s.Assists,
			Multikills: model.Multikills{
				Double: s.DoubleKills,
				Triple: s.TripleKills,
				Quadra: s.QuadraKills,
				Penta:  s.PentaKills,
			},
			Level:             s.ChampLevel,
			DamageToChampions: s.TotalDamageDealtToChampions,
			CS:                s.TotalMinionsKilled + s.NeutralMinionsKilled,
		}
		order = append(order, name)
	}

	if len(raw.Teams) != 2 {
		return nil, malformed("expected 2 teams, got %d", len(raw.Teams))
	}
	teams := make([]model.Team, 0, 2)
	for _, rt := range raw.Teams {
		t, err := p.buildTeam(rt, m.Participants, order)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", raw.GameID, err)
		}
		teams = append(teams, t)
	}

	// Losing team first.
	sort.SliceStable(teams, func(i, j int) bool { return !teams[i].Win && teams[j].Win })
	m.Losing, m.Winning = teams[0], teams[1]

	size := p.rosterSize()
	wins := boolInt(m.Losing.Win) + boolInt(m.Winning.Win)
	if len(m.Losing.Members) != size || len(m.Winning.Members) != size || wins != 1 {
		return nil, malformed("team sizes %d/%d (want %d), %d winning teams",
			len(m.Losing.Members), len(m.Winning.Members), size, wins)
	}
	return m, nil
}

func (p *Parser) buildTeam(rt rawTeam, participants map[string]*model.Participant, order []string) (model.Team, error) {
	t := model.Team{
		ID:         rt.TeamID,
		Win:        rt.Win == "Win",
		Towers:     rt.TowerKills,
		Inhibitors: rt.InhibitorKills,
		Dragons:    rt.DragonKills,
		Heralds:    rt.RiftHeraldKills,
		Barons:     rt.BaronKills,
	}
	for _, name := range order {
		if participants[name].TeamID == t.ID {
			t.Members = append(t.Members, name)
		}
	}
	for _, b := range rt.Bans {
		// -1 is a skipped ban.
		if b.ChampionID <= 0 {
			continue
		}
		champ, err := p.Champions.Name(b.ChampionID)
		if err != nil {
			return t, fmt.Errorf("team %d ban: %w", t.ID, err)
		}
		t.Bans = append(t.Bans, champ)
	}
	return t, nil
}

func (p *Parser) rosterSize() int {
	if p.RosterSize <= 0 {
		return model.DefaultRosterSize
	}
	return p.RosterSize
}

// ParseAll normalizes every record. Records with a malformed roster are logged
// and skipped; any other failure aborts. When two records share a game id the
// later one wins. The returned matches are in first-seen game id order.
func (p *Parser) ParseAll(records []Record) ([]*model.Match, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	byID := make(map[int64]*model.Match, len(records))
	var ids []int64
	for _, rec := range records {
		m, err := p.Parse(rec.Data)
		if err != nil {
			var re *RecordError
			if errors.As(err, &re) && errors.Is(err, ErrMalformedRoster) {
				log.Warn("discarding match",
					zap.String("source", rec.Source),
					zap.Int64("game_id", re.GameID),
					zap.String("reason", re.Reason))
				continue
			}
			return nil, fmt.Errorf("parse %s: %w", rec.Source, err)
		}
		if _, seen := byID[m.ID]; !seen {
			ids = append(ids, m.ID)
		} else {
			log.Debug("duplicate match record", zap.Int64("game_id", m.ID), zap.String("source", rec.Source))
		}
		byID[m.ID] = m
	}

	out := make([]*model.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	log.Info("parsed match records", zap.Int("records", len(records)), zap.Int("matches", len(out)))
	return out, nil
}

// ReadDir reads every *.json file directly inside dir, sorted by name.
func ReadDir(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return ReadFiles(paths)
}

// ReadFiles reads the given files. Directories are expanded with ReadDir.
func ReadFiles(paths []string) ([]Record, error) {
	var out []Record
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			recs, err := ReadDir(path)
			if err != nil {
				return nil, err
			}
			out = append(out, recs...)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		out = append(out, Record{Source: path, Data: data})
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
