package boxscore

import "context"

// Repository persists per-player lines.
type Repository interface {
	// SavePlayers replaces all stored lines for the game.
	SavePlayers(ctx context.Context, gamePk int64, players []PlayerLine) error

	// PlayersForTeam returns the stored lines for one side of a game.
	PlayersForTeam(ctx context.Context, gamePk, teamID int64) ([]PlayerLine, error)
}
