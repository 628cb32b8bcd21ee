package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/lq-ratings/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(id int64, created float64) *model.Match {
	m := &model.Match{
		ID:           id,
		CreationTime: created,
		Duration:     1724,
		GameMode:     "CLASSIC",
		Participants: make(map[string]*model.Participant),
		Losing:       model.Team{ID: 200, Towers: 2, Dragons: 1, Bans: []string{"Yasuo", "Zed"}},
		Winning:      model.Team{ID: 100, Win: true, Towers: 9, Inhibitors: 2, Dragons: 3, Heralds: 1, Barons: 1, Bans: []string{"Teemo"}},
	}
	add := func(t *model.Team, name, champ string, k int) {
		t.Members = append(t.Members, name)
		m.Participants[name] = &model.Participant{
			Name: name, TeamID: t.ID, Champion: champ, Win: t.Win,
			Kills: k, Deaths: 3, Assists: 7,
			Multikills: model.Multikills{Double: 1},
			Level: 16, DamageToChampions: 21000, CS: 180,
		}
	}
	for i, n := range []string{"zed", "amy", "kai", "bob", "lee"} {
		add(&m.Winning, n, "Ahri", i+2)
	}
	for i, n := range []string{"yui", "sam", "max", "ned", "ola"} {
		add(&m.Losing, n, "Lux", i)
	}
	return m
}

func TestMatchInsertAndExists(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(sampleMatch(4242, 1700000000)); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	exists, err := db.MatchExists(4242)
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}
	if exists2, _ := db.MatchExists(1); exists2 {
		t.Error("expected unknown match to not exist")
	}
}

func TestLoadMatchesRoundTrip(t *testing.T) {
	db := openMemDB(t)

	want := sampleMatch(4242, 1700000000.5)
	if err := db.InsertMatch(want); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	got, err := db.LoadMatches()
	if err != nil {
		t.Fatalf("LoadMatches: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestInsertMatchIdempotent(t *testing.T) {
	db := openMemDB(t)

	m := sampleMatch(7, 100)
	for i := 0; i < 2; i++ {
		if err := db.InsertMatch(m); err != nil {
			t.Fatalf("InsertMatch #%d: %v", i+1, err)
		}
	}
	got, err := db.LoadMatches()
	if err != nil {
		t.Fatalf("LoadMatches: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if n := len(got[0].Winning.Members); n != 5 {
		t.Errorf("expected 5 winners after re-insert, got %d", n)
	}
	if n := len(got[0].Losing.Bans); n != 2 {
		t.Errorf("expected 2 bans after re-insert, got %d", n)
	}
}

func TestListMatches(t *testing.T) {
	db := openMemDB(t)

	for _, m := range []*model.Match{sampleMatch(1, 100), sampleMatch(2, 300), sampleMatch(3, 200)} {
		if err := db.InsertMatch(m); err != nil {
			t.Fatalf("InsertMatch: %v", err)
		}
	}
	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	var ids []int64
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff([]int64{2, 3, 1}, ids); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}

	s := list[0]
	if s.Players != 10 {
		t.Errorf("players: want 10, got %d", s.Players)
	}
	// Winners have 2..6 kills, losers 0..4.
	if s.WinnerKills != 20 || s.LoserKills != 10 {
		t.Errorf("kills: want 20-10, got %d-%d", s.WinnerKills, s.LoserKills)
	}
	if s.WinningTeam != 100 || s.LosingTeam != 200 {
		t.Errorf("teams: want 100/200, got %d/%d", s.WinningTeam, s.LosingTeam)
	}
}

func TestGetMatchByPrefix(t *testing.T) {
	db := openMemDB(t)

	for _, m := range []*model.Match{sampleMatch(55501, 100), sampleMatch(55502, 200), sampleMatch(66600, 300)} {
		if err := db.InsertMatch(m); err != nil {
			t.Fatalf("InsertMatch: %v", err)
		}
	}
	s, err := db.GetMatchByPrefix("555")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if s == nil || s.ID != 55502 {
		t.Fatalf("expected most recent 555* match 55502, got %+v", s)
	}
	none, err := db.GetMatchByPrefix("9")
	if err != nil {
		t.Fatalf("GetMatchByPrefix miss: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for unknown prefix, got %+v", none)
	}
}

func TestDeleteMatch(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(sampleMatch(9, 1)); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	ok, err := db.DeleteMatch(9)
	if err != nil || !ok {
		t.Fatalf("DeleteMatch: ok=%v err=%v", ok, err)
	}
	_, rows, err := db.QueryRaw("SELECT COUNT(*) FROM participants")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if rows[0][0] != "0" {
		t.Errorf("participants left behind: %s", rows[0][0])
	}
	if ok, _ := db.DeleteMatch(9); ok {
		t.Error("second delete should report nothing removed")
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(sampleMatch(12, 1)); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	cols, rows, err := db.QueryRaw("SELECT name, champion, NULL AS empty_col FROM participants WHERE name = 'amy'")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "champion", "empty_col"}, cols); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"amy", "Ahri", "NULL"}}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestOpenFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path: want %s, got %s", path, db.Path())
	}
	if err := db.InsertMatch(sampleMatch(42, 1700000000)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	ok, err := db.MatchExists(42)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("match should survive a reopen")
	}
}

func TestRemoveDeletesWALFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.db")
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	existed, err := Remove(path)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !existed {
		t.Error("expected existed=true")
	}
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s should be gone, stat err %v", filepath.Base(p), err)
		}
	}

	// A stale log without its database is still cleared.
	if err := os.WriteFile(path+"-wal", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	existed, err = Remove(path)
	if err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if existed {
		t.Error("expected existed=false for a missing database")
	}
	if _, err := os.Stat(path + "-wal"); !os.IsNotExist(err) {
		t.Errorf("stale -wal should be gone, stat err %v", err)
	}
}
