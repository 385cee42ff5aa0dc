package postgres

import (
	"time"

	"github.com/dugoutlabs/dugout/internal/domain/game"
)

type gameSummaryTableModel struct {
	GameID       int64     `db:"game_id"`
	GameDate     string    `db:"game_date"`
	Status       string    `db:"status"`
	Venue        string    `db:"venue"`
	AwayTeamID   int64     `db:"away_team_id"`
	AwayTeamName string    `db:"away_team_name"`
	AwayScore    int       `db:"away_score"`
	HomeTeamID   int64     `db:"home_team_id"`
	HomeTeamName string    `db:"home_team_name"`
	HomeScore    int       `db:"home_score"`
	IngestedAt   time.Time `db:"ingested_at"`
}

func (m gameSummaryTableModel) toDomain() game.Summary {
	return game.Summary{
		GamePk:       m.GameID,
		GameDate:     m.GameDate,
		Status:       m.Status,
		Venue:        m.Venue,
		AwayTeamID:   m.AwayTeamID,
		AwayTeamName: m.AwayTeamName,
		AwayScore:    m.AwayScore,
		HomeTeamID:   m.HomeTeamID,
		HomeTeamName: m.HomeTeamName,
		HomeScore:    m.HomeScore,
	}
}

type gameSummaryInsertModel struct {
	GameID       int64  `db:"game_id"`
	GameDate     string `db:"game_date"`
	Status       string `db:"status"`
	Venue        string `db:"venue"`
	AwayTeamID   int64  `db:"away_team_id"`
	AwayTeamName string `db:"away_team_name"`
	AwayScore    int    `db:"away_score"`
	HomeTeamID   int64  `db:"home_team_id"`
	HomeTeamName string `db:"home_team_name"`
	HomeScore    int    `db:"home_score"`
}

func summaryInsertModelFromDomain(s game.Summary) gameSummaryInsertModel {
	return gameSummaryInsertModel{
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

type linescoreTableModel struct {
	GameID    int64 `db:"game_id"`
	IsHome    bool  `db:"is_home"`
	InningNum int   `db:"inning_num"`
	Runs      int   `db:"runs"`
}
