package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pable/lq-ratings/internal/model"
)

// MatchExists returns true if a match with the given game id is already stored.
func (db *DB) MatchExists(id int64) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE game_id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores a normalized match with its teams, bans and participants.
// Re-inserting the same game id replaces the previous rows.
func (db *DB) InsertMatch(m *model.Match) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := clearChildren(tx, m.ID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(game_id, created_at, duration, game_mode, winning_team, losing_team)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.CreationTime, m.Duration, m.GameMode, m.Winning.ID, m.Losing.ID,
	)
	if err != nil {
		return fmt.Errorf("insert match %d: %w", m.ID, err)
	}

	teamStmt, err := tx.Prepare(`
		INSERT INTO teams(game_id, team_id, win, towers, inhibitors, dragons, heralds, barons)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer teamStmt.Close()

	banStmt, err := tx.Prepare(`INSERT INTO team_bans(game_id, team_id, slot, champion) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer banStmt.Close()

	partStmt, err := tx.Prepare(`
		INSERT INTO participants(
			game_id, name, slot, team_id, champion, win,
			kills, deaths, assists,
			double_kills, triple_kills, quadra_kills, penta_kills,
			level, damage, cs
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer partStmt.Close()

	for _, t := range []model.Team{m.Losing, m.Winning} {
		_, err = teamStmt.Exec(m.ID, t.ID, boolInt(t.Win),
			t.Towers, t.Inhibitors, t.Dragons, t.Heralds, t.Barons)
		if err != nil {
			return fmt.Errorf("insert team %d of %d: %w", t.ID, m.ID, err)
		}
		for slot, champ := range t.Bans {
			if _, err = banStmt.Exec(m.ID, t.ID, slot, champ); err != nil {
				return fmt.Errorf("insert ban %s of %d: %w", champ, m.ID, err)
			}
		}
		for slot, name := range t.Members {
			p := m.Participants[name]
			_, err = partStmt.Exec(
				m.ID, p.Name, slot, p.TeamID, p.Champion, boolInt(p.Win),
				p.Kills, p.Deaths, p.Assists,
				p.Multikills.Double, p.Multikills.Triple, p.Multikills.Quadra, p.Multikills.Penta,
				p.Level, p.DamageToChampions, p.CS,
			)
			if err != nil {
				return fmt.Errorf("insert participant %s of %d: %w", name, m.ID, err)
			}
		}
	}
	return tx.Commit()
}

// DeleteMatch removes a match and its child rows. It reports whether a row existed.
func (db *DB) DeleteMatch(id int64) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if err := clearChildren(tx, id); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM matches WHERE game_id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

func clearChildren(tx *sql.Tx, id int64) error {
	for _, table := range []string{"participants", "team_bans", "teams"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", id); err != nil {
			return fmt.Errorf("clear %s for %d: %w", table, id, err)
		}
	}
	return nil
}

const summarySelect = `
	SELECT m.game_id, m.created_at, m.duration, m.game_mode, m.winning_team, m.losing_team,
	       COALESCE(SUM(CASE WHEN p.team_id = m.winning_team THEN p.kills END), 0),
	       COALESCE(SUM(CASE WHEN p.team_id = m.losing_team THEN p.kills END), 0),
	       COUNT(p.name)
	FROM matches m
	LEFT JOIN participants p ON p.game_id = m.game_id`

func scanSummary(sc interface{ Scan(...any) error }) (model.MatchSummary, error) {
	var s model.MatchSummary
	err := sc.Scan(&s.ID, &s.CreationTime, &s.Duration, &s.GameMode,
		&s.WinningTeam, &s.LosingTeam, &s.WinnerKills, &s.LoserKills, &s.Players)
	return s, err
}

// ListMatches returns all stored match summaries, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(summarySelect + `
		GROUP BY m.game_id
		ORDER BY m.created_at DESC, m.game_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the most recent match whose game id starts with the
// given digits. It returns nil when nothing matches.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	row := db.conn.QueryRow(summarySelect+`
		WHERE CAST(m.game_id AS TEXT) LIKE ?
		GROUP BY m.game_id
		ORDER BY m.created_at DESC
		LIMIT 1`, prefix+"%")
	s, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadMatches rebuilds every stored match. Team members keep their stored order.
func (db *DB) LoadMatches() ([]*model.Match, error) {
	byID := map[int64]*model.Match{}
	var out []*model.Match

	rows, err := db.conn.Query(`
		SELECT game_id, created_at, duration, game_mode, winning_team, losing_team
		FROM matches ORDER BY created_at, game_id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		m := &model.Match{Participants: make(map[string]*model.Participant)}
		if err := rows.Scan(&m.ID, &m.CreationTime, &m.Duration, &m.GameMode,
			&m.Winning.ID, &m.Losing.ID); err != nil {
			rows.Close()
			return nil, err
		}
		m.Winning.Win = true
		byID[m.ID] = m
		out = append(out, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.loadTeams(byID); err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	if err := db.loadBans(byID); err != nil {
		return nil, fmt.Errorf("load bans: %w", err)
	}
	if err := db.loadParticipants(byID); err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	return out, nil
}

func teamOf(m *model.Match, teamID int) *model.Team {
	if teamID == m.Winning.ID {
		return &m.Winning
	}
	return &m.Losing
}

func (db *DB) loadTeams(byID map[int64]*model.Match) error {
	rows, err := db.conn.Query(`
		SELECT game_id, team_id, towers, inhibitors, dragons, heralds, barons FROM teams`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var teamID, towers, inhibs, dragons, heralds, barons int
		if err := rows.Scan(&id, &teamID, &towers, &inhibs, &dragons, &heralds, &barons); err != nil {
			return err
		}
		m, ok := byID[id]
		if !ok {
			continue
		}
		t := teamOf(m, teamID)
		t.Towers, t.Inhibitors = towers, inhibs
		t.Dragons, t.Heralds, t.Barons = dragons, heralds, barons
	}
	return rows.Err()
}

func (db *DB) loadBans(byID map[int64]*model.Match) error {
	rows, err := db.conn.Query(`
		SELECT game_id, team_id, champion FROM team_bans ORDER BY game_id, team_id, slot`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var teamID int
		var champ string
		if err := rows.Scan(&id, &teamID, &champ); err != nil {
			return err
		}
		if m, ok := byID[id]; ok {
			t := teamOf(m, teamID)
			t.Bans = append(t.Bans, champ)
		}
	}
	return rows.Err()
}

func (db *DB) loadParticipants(byID map[int64]*model.Match) error {
	rows, err := db.conn.Query(`
		SELECT game_id, name, team_id, champion, win,
		       kills, deaths, assists,
		       double_kills, triple_kills, quadra_kills, penta_kills,
		       level, damage, cs
		FROM participants ORDER BY game_id, team_id, slot`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var winInt int
		p := &model.Participant{}
		if err := rows.Scan(&id, &p.Name, &p.TeamID, &p.Champion, &winInt,
			&p.Kills, &p.Deaths, &p.Assists,
			&p.Multikills.Double, &p.Multikills.Triple, &p.Multikills.Quadra, &p.Multikills.Penta,
			&p.Level, &p.DamageToChampions, &p.CS); err != nil {
			return err
		}
		p.Win = winInt != 0
		m, ok := byID[id]
		if !ok {
			continue
		}
		m.Participants[p.Name] = p
		t := teamOf(m, p.TeamID)
		t.Members = append(t.Members, p.Name)
	}
	return rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and every row
// rendered as strings. NULL becomes "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
