package usecase

import (
	"context"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/game"
)

// ScheduledGame is one schedule entry for a team on a date.
type ScheduledGame struct {
	GamePk       int64
	OfficialDate string
	Status       string
}

// GameFeed is everything extracted from one live feed fetch. Raw is the
// unparsed response body, kept for archival.
type GameFeed struct {
	Summary   game.Summary
	Linescore []game.LinescoreRow
	Players   []boxscore.PlayerLine
	Raw       []byte
}

// GameDataProvider is the upstream schedule and live-feed API.
type GameDataProvider interface {
	ScheduleGames(ctx context.Context, teamID int64, date string) ([]ScheduledGame, error)
	FeedLive(ctx context.Context, gamePk int64) (GameFeed, error)
}

// StandingsProvider fetches current league standings as raw records; the
// odds estimator normalizes and drops what it cannot use.
type StandingsProvider interface {
	FetchStandings(ctx context.Context) ([]map[string]any, error)
}

// RawArchive stores unparsed feed payloads grouped by game date.
type RawArchive interface {
	ArchiveRaw(ctx context.Context, date string, gamePk int64, payload []byte) error
}
