package statsapi

import (
	"sort"
	"strconv"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/domain/stats"
	"github.com/dugoutlabs/dugout/internal/usecase"
)

func extractFeed(gamePk int64, envelope feedEnvelope) usecase.GameFeed {
	gd := envelope.GameData
	ld := envelope.LiveData

	pk := gd.Game.Pk
	if pk == 0 {
		pk = gamePk
	}

	summary := game.Summary{
		GamePk:       pk,
		GameDate:     gd.Datetime.OfficialDate,
		Status:       gd.Status.DetailedState,
		Venue:        gd.Venue.Name,
		AwayTeamID:   gd.Teams.Away.ID,
		AwayTeamName: gd.Teams.Away.Name,
		AwayScore:    ld.Linescore.Teams.Away.Runs,
		HomeTeamID:   gd.Teams.Home.ID,
		HomeTeamName: gd.Teams.Home.Name,
		HomeScore:    ld.Linescore.Teams.Home.Runs,
	}

	linescore := make([]game.LinescoreRow, 0, len(ld.Linescore.Innings))
	for i, inning := range ld.Linescore.Innings {
		num := inning.Num
		if num == 0 {
			num = i + 1
		}
		linescore = append(linescore, game.LinescoreRow{
			GamePk:   pk,
			Inning:   num,
			AwayRuns: inning.Away.Runs,
			HomeRuns: inning.Home.Runs,
		})
	}
	sort.Slice(linescore, func(i, j int) bool { return linescore[i].Inning < linescore[j].Inning })

	players := extractTeamPlayers(pk, ld.Boxscore.Teams.Away)
	players = append(players, extractTeamPlayers(pk, ld.Boxscore.Teams.Home)...)

	return usecase.GameFeed{
		Summary:   summary,
		Linescore: linescore,
		Players:   players,
	}
}

func extractTeamPlayers(gamePk int64, boxTeam feedBoxTeam) []boxscore.PlayerLine {
	lines := make([]boxscore.PlayerLine, 0, len(boxTeam.Players))
	for _, p := range boxTeam.Players {
		line, ok := extractPlayer(gamePk, boxTeam.Team, p)
		if !ok {
			continue
		}
		lines = append(lines, line)
	}
	// Map iteration order is random; keep output stable for persistence
	// and tests.
	sort.Slice(lines, func(i, j int) bool { return lines[i].PlayerID < lines[j].PlayerID })
	return lines
}

func extractPlayer(gamePk int64, t feedTeam, p feedBoxPlayer) (boxscore.PlayerLine, bool) {
	b := p.Stats.Batting
	pt := p.Stats.Pitching

	batted := b.PlateAppearances > 0 || b.AtBats > 0 || b.Hits > 0 ||
		b.BaseOnBalls > 0 || b.HitByPitch > 0 || b.SacFlies > 0 ||
		b.StolenBases > 0 || b.Runs > 0
	outs := pitchingOuts(pt)
	pitched := outs > 0 || pt.BattersFaced > 0 || pt.GamesStarted > 0

	if !batted && !pitched {
		return boxscore.PlayerLine{}, false
	}

	line := boxscore.PlayerLine{
		GamePk:     gamePk,
		TeamID:     t.ID,
		TeamName:   t.Name,
		PlayerID:   p.Person.ID,
		PlayerName: p.Person.FullName,
		Position:   p.Position.Abbreviation,
	}

	if batted {
		line.Batted = true
		line.BattingOrder = parseBattingOrder(p.BattingOrder)
		line.Batting = stats.BattingLine{
			AtBats:      b.AtBats,
			Hits:        b.Hits,
			Doubles:     b.Doubles,
			Triples:     b.Triples,
			HomeRuns:    b.HomeRuns,
			Walks:       b.BaseOnBalls,
			HitByPitch:  b.HitByPitch,
			SacFlies:    b.SacFlies,
			StolenBases: b.StolenBases,
			RBI:         b.RBI,
			Runs:        b.Runs,
		}
	}

	if pitched {
		line.Pitched = true
		line.Started = pt.GamesStarted > 0
		line.Pitching = stats.PitchingLine{
			Outs:       outs,
			Hits:       pt.Hits,
			Runs:       pt.Runs,
			EarnedRuns: pt.EarnedRuns,
			Walks:      pt.BaseOnBalls,
			Strikeouts: pt.StrikeOuts,
			HomeRuns:   pt.HomeRuns,
			BattersHit: pt.HitBatsmen,
		}
	}

	return line, true
}

// The feed carries both an outs count and the baseball-fraction innings
// string; trust outs when present.
func pitchingOuts(pt feedPitchingStats) int {
	if pt.Outs > 0 {
		return pt.Outs
	}
	return stats.OutsFromInningsString(pt.InningsPitched)
}

// battingOrder is a three-digit string where "301" means third slot,
// first substitution.
func parseBattingOrder(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
