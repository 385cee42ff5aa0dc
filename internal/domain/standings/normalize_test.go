package standings

import "testing"

func apiRecord(id float64, name, league, division string, wins, losses float64) map[string]any {
	return map[string]any{
		"team":     map[string]any{"id": id, "name": name},
		"league":   map[string]any{"name": league},
		"division": map[string]any{"name": division},
		"wins":     wins,
		"losses":   losses,
	}
}

func TestNormalize_APIShape(t *testing.T) {
	t.Parallel()

	s, ok := Normalize(apiRecord(121, "New York Mets", "National League", "National League East", 88, 74))
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if s.TeamID != 121 || s.TeamName != "New York Mets" {
		t.Fatalf("unexpected team: %+v", s)
	}
	if s.League != "National League" || s.Division != "National League East" {
		t.Fatalf("unexpected placement: %+v", s)
	}
	if s.Wins != 88 || s.Losses != 74 {
		t.Fatalf("unexpected record: %+v", s)
	}
	if s.GamesPlayed() != 162 {
		t.Fatalf("games played = %d", s.GamesPlayed())
	}
}

func TestNormalize_LegacyFlatShape(t *testing.T) {
	t.Parallel()

	s, ok := Normalize(map[string]any{
		"team_id":  float64(147),
		"name":     "New York Yankees",
		"league":   "American League",
		"division": "American League East",
		"w":        float64(94),
		"l":        float64(68),
	})
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if s.TeamID != 147 || s.Wins != 94 || s.Losses != 68 {
		t.Fatalf("unexpected standing: %+v", s)
	}
}

func TestNormalize_LeagueRecordFallback(t *testing.T) {
	t.Parallel()

	rec := map[string]any{
		"team":         map[string]any{"id": float64(119), "name": "Los Angeles Dodgers"},
		"league":       "National League",
		"division":     "National League West",
		"leagueRecord": map[string]any{"wins": float64(98), "losses": float64(64)},
	}
	s, ok := Normalize(rec)
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if s.Wins != 98 || s.Losses != 64 {
		t.Fatalf("unexpected record: %+v", s)
	}
}

func TestNormalize_DropsIncompleteRecords(t *testing.T) {
	t.Parallel()

	cases := []map[string]any{
		nil,
		{},
		// no division
		{
			"team":   map[string]any{"id": float64(1), "name": "X"},
			"league": "American League",
			"wins":   float64(1), "losses": float64(2),
		},
		// no win/loss anywhere
		{
			"team":     map[string]any{"id": float64(1), "name": "X"},
			"league":   "American League",
			"division": "American League East",
		},
		// blank name
		{
			"team":     map[string]any{"id": float64(1), "name": "  "},
			"league":   "American League",
			"division": "American League East",
			"wins":     float64(1), "losses": float64(2),
		},
	}
	for i, rec := range cases {
		if _, ok := Normalize(rec); ok {
			t.Fatalf("case %d: expected record to be dropped", i)
		}
	}
}

func TestNormalizeAll_KeepsOrderAndDropsInvalid(t *testing.T) {
	t.Parallel()

	out := NormalizeAll([]map[string]any{
		apiRecord(1, "A", "American League", "American League East", 10, 5),
		{"junk": true},
		apiRecord(2, "B", "American League", "American League East", 8, 7),
	})
	if len(out) != 2 || out[0].TeamID != 1 || out[1].TeamID != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestWinPct_ZeroGames(t *testing.T) {
	t.Parallel()

	if pct := (TeamStanding{}).WinPct(); pct != 0.0 {
		t.Fatalf("win pct = %v, want 0", pct)
	}
}

func TestGamesBack(t *testing.T) {
	t.Parallel()

	leader := TeamStanding{Wins: 90, Losses: 60}
	trailer := TeamStanding{Wins: 85, Losses: 65}
	if gb := trailer.GamesBack(leader); gb != 5.0 {
		t.Fatalf("games back = %v, want 5", gb)
	}
}
