package postgres

import (
	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/stats"
)

const (
	roleBatter  = "batter"
	rolePitcher = "pitcher"
)

// One table row per player per role; a two-way player gets a batter row
// and a pitcher row.
type boxscorePlayerTableModel struct {
	GameID       int64   `db:"game_id"`
	TeamID       int64   `db:"team_id"`
	TeamName     string  `db:"team_name"`
	PlayerID     int64   `db:"player_id"`
	PlayerName   string  `db:"player_name"`
	Position     string  `db:"position"`
	Role         string  `db:"role"`
	BattingOrder int     `db:"batting_order"`
	AB           int     `db:"ab"`
	H            int     `db:"h"`
	Doubles      int     `db:"doubles"`
	Triples      int     `db:"triples"`
	HR           int     `db:"hr"`
	BB           int     `db:"bb"`
	HBP          int     `db:"hbp"`
	SF           int     `db:"sf"`
	SB           int     `db:"sb"`
	R            int     `db:"r"`
	RBI          int     `db:"rbi"`
	AVG          float64 `db:"avg"`
	OBP          float64 `db:"obp"`
	SLG          float64 `db:"slg"`
	OPS          float64 `db:"ops"`
	BatScore     float64 `db:"bat_score"`
	Outs         int     `db:"outs"`
	IP           float64 `db:"ip"`
	ER           int     `db:"er"`
	SO           int     `db:"so"`
	Started      bool    `db:"started"`
	ERA          float64 `db:"era"`
	WHIP         float64 `db:"whip"`
	PitchScore   float64 `db:"pitch_score"`
}

func boxscoreRowsFromDomain(p boxscore.PlayerLine) []boxscorePlayerTableModel {
	base := boxscorePlayerTableModel{
		GameID:     p.GamePk,
		TeamID:     p.TeamID,
		TeamName:   p.TeamName,
		PlayerID:   p.PlayerID,
		PlayerName: p.PlayerName,
		Position:   p.Position,
	}

	var rows []boxscorePlayerTableModel
	if p.Batted {
		row := base
		row.Role = roleBatter
		row.BattingOrder = p.BattingOrder
		row.AB = p.Batting.AtBats
		row.H = p.Batting.Hits
		row.Doubles = p.Batting.Doubles
		row.Triples = p.Batting.Triples
		row.HR = p.Batting.HomeRuns
		row.BB = p.Batting.Walks
		row.HBP = p.Batting.HitByPitch
		row.SF = p.Batting.SacFlies
		row.SB = p.Batting.StolenBases
		row.R = p.Batting.Runs
		row.RBI = p.Batting.RBI
		row.AVG = p.BattingDerived.Average
		row.OBP = p.BattingDerived.OnBase
		row.SLG = p.BattingDerived.Slugging
		row.OPS = p.BattingDerived.OPS
		row.BatScore = p.BattingDerived.GameScore
		rows = append(rows, row)
	}
	if p.Pitched {
		row := base
		row.Role = rolePitcher
		row.Outs = p.Pitching.Outs
		row.IP = p.PitchingDerived.InningsPitched
		row.ER = p.Pitching.EarnedRuns
		row.H = p.Pitching.Hits
		row.BB = p.Pitching.Walks
		row.HR = p.Pitching.HomeRuns
		row.SO = p.Pitching.Strikeouts
		row.Started = p.Started
		row.ERA = p.PitchingDerived.ERA
		row.WHIP = p.PitchingDerived.WHIP
		row.PitchScore = p.PitchingDerived.GameScore
		rows = append(rows, row)
	}
	return rows
}

func mergeBoxscoreRows(models []boxscorePlayerTableModel) []boxscore.PlayerLine {
	byID := make(map[int64]*boxscore.PlayerLine, len(models))
	order := make([]int64, 0, len(models))

	for _, m := range models {
		line, ok := byID[m.PlayerID]
		if !ok {
			line = &boxscore.PlayerLine{
				GamePk:     m.GameID,
				TeamID:     m.TeamID,
				TeamName:   m.TeamName,
				PlayerID:   m.PlayerID,
				PlayerName: m.PlayerName,
				Position:   m.Position,
			}
			byID[m.PlayerID] = line
			order = append(order, m.PlayerID)
		}

		switch m.Role {
		case roleBatter:
			line.Batted = true
			line.BattingOrder = m.BattingOrder
			line.Batting = stats.BattingLine{
				AtBats:      m.AB,
				Hits:        m.H,
				Doubles:     m.Doubles,
				Triples:     m.Triples,
				HomeRuns:    m.HR,
				Walks:       m.BB,
				HitByPitch:  m.HBP,
				SacFlies:    m.SF,
				StolenBases: m.SB,
				RBI:         m.RBI,
				Runs:        m.R,
			}
		case rolePitcher:
			line.Pitched = true
			line.Started = m.Started
			line.Pitching = stats.PitchingLine{
				Outs:       m.Outs,
				Hits:       m.H,
				EarnedRuns: m.ER,
				Walks:      m.BB,
				Strikeouts: m.SO,
				HomeRuns:   m.HR,
			}
		}
	}

	out := make([]boxscore.PlayerLine, 0, len(order))
	for _, id := range order {
		line := byID[id]
		line.Annotate()
		out = append(out, *line)
	}
	return out
}
