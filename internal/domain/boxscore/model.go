// Package boxscore models per-player box score lines annotated with
// derived metrics.
package boxscore

import "github.com/dugoutlabs/dugout/internal/domain/stats"

// PlayerLine is one player's full line for one game. Identity fields
// carry validation tags; a line failing validation is dropped before
// persistence, never stored partially.
type PlayerLine struct {
	GamePk     int64  `validate:"required,gt=0"`
	TeamID     int64  `validate:"required,gt=0"`
	TeamName   string `validate:"required"`
	PlayerID   int64  `validate:"required,gt=0"`
	PlayerName string `validate:"required"`
	Position   string

	Batted         bool
	BattingOrder   int
	Batting        stats.BattingLine
	BattingDerived stats.BattingDerived

	Pitched         bool
	Started         bool
	Pitching        stats.PitchingLine
	PitchingDerived stats.PitchingDerived
}

// Annotate recomputes the derived blocks from the raw counting stats.
func (p *PlayerLine) Annotate() {
	if p.Batted {
		p.BattingDerived = stats.DeriveBatting(p.Batting)
	}
	if p.Pitched {
		p.PitchingDerived = stats.DerivePitching(p.Pitching)
	}
}

// PlateAppearances approximates trips to the plate from the counts a box
// score carries.
func (p PlayerLine) PlateAppearances() int {
	b := p.Batting
	return b.AtBats + b.Walks + b.HitByPitch + b.SacFlies
}
