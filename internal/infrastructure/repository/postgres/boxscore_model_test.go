package postgres

import (
	"testing"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/stats"
)

func TestBoxscoreRows_TwoWayPlayerRoundTrip(t *testing.T) {
	t.Parallel()

	line := boxscore.PlayerLine{
		GamePk: 777001, TeamID: 121, TeamName: "New York Mets",
		PlayerID: 660271, PlayerName: "Shohei Ohtani",
		Batted:  true,
		Batting: stats.BattingLine{AtBats: 4, Hits: 2, HomeRuns: 1, RBI: 2, Runs: 1},
		Pitched: true, Started: true,
		Pitching: stats.PitchingLine{Outs: 18, Hits: 4, EarnedRuns: 1, Strikeouts: 9},
	}
	line.Annotate()

	rows := boxscoreRowsFromDomain(line)
	if len(rows) != 2 {
		t.Fatalf("expected batter and pitcher rows, got %d", len(rows))
	}
	if rows[0].Role != roleBatter || rows[1].Role != rolePitcher {
		t.Fatalf("unexpected roles: %+v", rows)
	}
	if rows[0].H != 2 || rows[1].H != 4 {
		t.Fatalf("role rows must carry their own hit counts: %+v", rows)
	}

	merged := mergeBoxscoreRows(rows)
	if len(merged) != 1 {
		t.Fatalf("expected one merged player, got %d", len(merged))
	}
	got := merged[0]
	if !got.Batted || !got.Pitched || !got.Started {
		t.Fatalf("roles lost in merge: %+v", got)
	}
	if got.Batting.Hits != 2 || got.Pitching.Hits != 4 || got.Pitching.Outs != 18 {
		t.Fatalf("stats lost in merge: %+v", got)
	}
	if got.PitchingDerived.InningsText != "6.0" {
		t.Fatalf("derived metrics not recomputed: %+v", got.PitchingDerived)
	}
}

func TestBoxscoreRows_BatterOnly(t *testing.T) {
	t.Parallel()

	line := boxscore.PlayerLine{
		GamePk: 777001, TeamID: 121, TeamName: "New York Mets",
		PlayerID: 501, PlayerName: "Pete Alonso",
		Batted:  true,
		Batting: stats.BattingLine{AtBats: 4, Hits: 1},
	}
	rows := boxscoreRowsFromDomain(line)
	if len(rows) != 1 || rows[0].Role != roleBatter {
		t.Fatalf("expected single batter row, got %+v", rows)
	}
}
