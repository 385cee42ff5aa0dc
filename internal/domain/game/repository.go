package game

import (
	"context"
	"errors"

	"github.com/dugoutlabs/dugout/internal/domain/team"
)

// ErrNotFound reports an absent game rather than a failed lookup.
var ErrNotFound = errors.New("game not found")

// Repository persists game summaries and linescores and answers the
// digest lookup.
type Repository interface {
	// SaveGame replaces the stored summary and linescore for the game.
	SaveGame(ctx context.Context, summary Summary, linescore []LinescoreRow) error

	// FindFinalSummary returns the newest final game for the team on the
	// given date, or ErrNotFound.
	FindFinalSummary(ctx context.Context, date string, ref team.Ref) (Summary, error)

	// Linescore returns the stored innings for a game in innings order.
	Linescore(ctx context.Context, gamePk int64) ([]LinescoreRow, error)
}
