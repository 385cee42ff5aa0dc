// Package game models one scheduled game: identity, final score, and the
// per-inning linescore.
package game

import "strings"

// StatusFinal is the detailed-state value the feed reports once a game
// is over.
const StatusFinal = "Final"

// Summary is the game-level record extracted from a live feed.
type Summary struct {
	GamePk       int64
	GameDate     string // officialDate, YYYY-MM-DD
	Status       string
	Venue        string
	AwayTeamID   int64
	AwayTeamName string
	AwayScore    int
	HomeTeamID   int64
	HomeTeamName string
	HomeScore    int
}

func (s Summary) IsFinal() bool {
	return strings.EqualFold(strings.TrimSpace(s.Status), StatusFinal)
}

func (s Summary) Involves(teamID int64) bool {
	return teamID != 0 && (s.AwayTeamID == teamID || s.HomeTeamID == teamID)
}

// Side is one team's view of a game.
type Side struct {
	TeamID   int64
	TeamName string
	Score    int
	Home     bool
}

// Sides splits the summary into the given team's side and its opponent.
// ok is false when the team did not play in this game.
func (s Summary) Sides(teamID int64) (own, opp Side, ok bool) {
	away := Side{TeamID: s.AwayTeamID, TeamName: s.AwayTeamName, Score: s.AwayScore}
	home := Side{TeamID: s.HomeTeamID, TeamName: s.HomeTeamName, Score: s.HomeScore, Home: true}
	switch teamID {
	case s.AwayTeamID:
		return away, home, true
	case s.HomeTeamID:
		return home, away, true
	}
	return Side{}, Side{}, false
}

// LinescoreRow is one inning's runs for both sides, in innings order.
type LinescoreRow struct {
	GamePk   int64
	Inning   int
	AwayRuns int
	HomeRuns int
}
