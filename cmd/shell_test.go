package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/lq-ratings/internal/aggregator"
)

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"player amy", []string{"player", "amy"}},
		{`player "Big Bob" Ahri`, []string{"player", "Big Bob", "Ahri"}},
		{"trend  \"Lee  Sin Main\"\t", []string{"trend", "Lee  Sin Main"}},
		{`player ""`, []string{"player", ""}},
	}
	for _, tc := range cases {
		got, err := splitArgs(tc.line)
		if err != nil {
			t.Fatalf("splitArgs(%q): %v", tc.line, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("splitArgs(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}

	if _, err := splitArgs(`player "Big Bob`); err == nil {
		t.Error("expected error for unterminated quote")
	}
}

func TestPlayerArgs(t *testing.T) {
	cases := []struct {
		args        []string
		name, champ string
	}{
		{[]string{"amy"}, "amy", aggregator.AllChampions},
		{[]string{"amy", "Lee", "Sin"}, "amy", "Lee Sin"},
		{[]string{"Big Bob"}, "Big Bob", aggregator.AllChampions},
		{[]string{"Big", "Bob", "-c", "Ahri"}, "Big Bob", "Ahri"},
		{[]string{"--champion", "Lee Sin", "amy"}, "amy", "Lee Sin"},
	}
	for _, tc := range cases {
		name, champ, err := playerArgs(tc.args)
		if err != nil {
			t.Fatalf("playerArgs(%q): %v", tc.args, err)
		}
		if name != tc.name || champ != tc.champ {
			t.Errorf("playerArgs(%q): want (%q, %q), got (%q, %q)", tc.args, tc.name, tc.champ, name, champ)
		}
	}

	for _, args := range [][]string{{"amy", "-c"}, {"-c", "Ahri"}} {
		if _, _, err := playerArgs(args); err == nil {
			t.Errorf("playerArgs(%q): expected error", args)
		}
	}
}
