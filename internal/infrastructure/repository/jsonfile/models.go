package jsonfile

import (
	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/domain/stats"
)

// File row shapes. Key names follow the warehouse schema so the same
// files remain readable by older tooling.

type summaryRow struct {
	GameID       int64  `json:"game_id"`
	GameDate     string `json:"game_date"`
	Status       string `json:"status"`
	Venue        string `json:"venue,omitempty"`
	AwayTeamID   int64  `json:"away_team_id"`
	AwayTeamName string `json:"away_team_name"`
	AwayScore    int    `json:"away_score"`
	HomeTeamID   int64  `json:"home_team_id"`
	HomeTeamName string `json:"home_team_name"`
	HomeScore    int    `json:"home_score"`
}

func summaryRowFromDomain(s game.Summary) summaryRow {
	return summaryRow{
		GameID:       s.GamePk,
		GameDate:     s.GameDate,
		Status:       s.Status,
		Venue:        s.Venue,
		AwayTeamID:   s.AwayTeamID,
		AwayTeamName: s.AwayTeamName,
		AwayScore:    s.AwayScore,
		HomeTeamID:   s.HomeTeamID,
		HomeTeamName: s.HomeTeamName,
		HomeScore:    s.HomeScore,
	}
}

func (r summaryRow) toDomain() game.Summary {
	return game.Summary{
		GamePk:       r.GameID,
		GameDate:     r.GameDate,
		Status:       r.Status,
		Venue:        r.Venue,
		AwayTeamID:   r.AwayTeamID,
		AwayTeamName: r.AwayTeamName,
		AwayScore:    r.AwayScore,
		HomeTeamID:   r.HomeTeamID,
		HomeTeamName: r.HomeTeamName,
		HomeScore:    r.HomeScore,
	}
}

type linescoreRow struct {
	GameID    int64 `json:"game_id"`
	IsHome    bool  `json:"is_home"`
	InningNum int   `json:"inning_num"`
	Runs      int   `json:"runs"`
}

const (
	roleBatter  = "batter"
	rolePitcher = "pitcher"
)

// playerRow carries both role layouts; Role says which half is live. A
// player who batted and pitched produces two rows, one per role.
type playerRow struct {
	GameID       int64  `json:"game_id"`
	TeamID       int64  `json:"team_id"`
	TeamName     string `json:"team_name"`
	PlayerID     int64  `json:"player_id"`
	PlayerName   string `json:"player_name"`
	Position     string `json:"position,omitempty"`
	Role         string `json:"role"`
	BattingOrder int    `json:"batting_order,omitempty"`

	AB       int     `json:"AB,omitempty"`
	H        int     `json:"H,omitempty"`
	Doubles  int     `json:"doubles,omitempty"`
	Triples  int     `json:"triples,omitempty"`
	HR       int     `json:"HR,omitempty"`
	BB       int     `json:"BB,omitempty"`
	HBP      int     `json:"HBP,omitempty"`
	SF       int     `json:"SF,omitempty"`
	SB       int     `json:"SB,omitempty"`
	R        int     `json:"R,omitempty"`
	RBI      int     `json:"RBI,omitempty"`
	AVG      float64 `json:"AVG"`
	OBP      float64 `json:"OBP"`
	SLG      float64 `json:"SLG"`
	OPS      float64 `json:"OPS"`
	BatScore float64 `json:"BAT_SCORE"`

	Outs       int     `json:"outs,omitempty"`
	IP         float64 `json:"IP,omitempty"`
	ER         int     `json:"ER,omitempty"`
	SO         int     `json:"SO,omitempty"`
	Started    bool    `json:"started,omitempty"`
	ERA        float64 `json:"ERA"`
	WHIP       float64 `json:"WHIP"`
	PitchScore float64 `json:"PITCH_SCORE"`
}

func playerRowsFromDomain(p boxscore.PlayerLine) []playerRow {
	base := playerRow{
		GameID:     p.GamePk,
		TeamID:     p.TeamID,
		TeamName:   p.TeamName,
		PlayerID:   p.PlayerID,
		PlayerName: p.PlayerName,
		Position:   p.Position,
	}

	var rows []playerRow
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

// mergePlayerRows folds role rows back into per-player lines, keeping
// the file's row order for first appearance.
func mergePlayerRows(rows []playerRow) []boxscore.PlayerLine {
	byID := make(map[int64]*boxscore.PlayerLine, len(rows))
	order := make([]int64, 0, len(rows))

	for _, row := range rows {
		line, ok := byID[row.PlayerID]
		if !ok {
			line = &boxscore.PlayerLine{
				GamePk:     row.GameID,
				TeamID:     row.TeamID,
				TeamName:   row.TeamName,
				PlayerID:   row.PlayerID,
				PlayerName: row.PlayerName,
				Position:   row.Position,
			}
			byID[row.PlayerID] = line
			order = append(order, row.PlayerID)
		}

		switch row.Role {
		case roleBatter:
			line.Batted = true
			line.BattingOrder = row.BattingOrder
			line.Batting = stats.BattingLine{
				AtBats:      row.AB,
				Hits:        row.H,
				Doubles:     row.Doubles,
				Triples:     row.Triples,
				HomeRuns:    row.HR,
				Walks:       row.BB,
				HitByPitch:  row.HBP,
				SacFlies:    row.SF,
				StolenBases: row.SB,
				RBI:         row.RBI,
				Runs:        row.R,
			}
		case rolePitcher:
			line.Pitched = true
			line.Started = row.Started
			line.Pitching = stats.PitchingLine{
				Outs:       row.Outs,
				Hits:       row.H,
				EarnedRuns: row.ER,
				Walks:      row.BB,
				Strikeouts: row.SO,
				HomeRuns:   row.HR,
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

type digestRow struct {
	GameID    int64  `json:"game_id"`
	TeamID    int64  `json:"team_id"`
	TeamName  string `json:"team_name"`
	GameDate  string `json:"game_date"`
	DigestMD  string `json:"digest_md"`
	CreatedAt string `json:"created_at"`
}
