package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/platform/logging"
)

const (
	defaultIngestWorkers = 4
	defaultPollInterval  = 2 * time.Minute
	defaultMaxWait       = 4 * time.Hour
)

// IngestOptions tunes the fan-out and the -wait polling loop.
type IngestOptions struct {
	Workers      int
	PollInterval time.Duration
	MaxWait      time.Duration
}

func (o IngestOptions) withDefaults() IngestOptions {
	if o.Workers <= 0 {
		o.Workers = defaultIngestWorkers
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.MaxWait <= 0 {
		o.MaxWait = defaultMaxWait
	}
	return o
}

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	GamePks        []int64
	GamesIngested  int
	PlayersKept    int
	PlayersDropped int
	WaitedFor      time.Duration
}

// IngestService pulls one team's games for a date from the upstream API,
// annotates box scores with derived metrics, and persists everything to
// the configured sink. Doubleheaders make the per-game fetch worth a
// small worker pool.
type IngestService struct {
	provider GameDataProvider
	games    game.Repository
	players  boxscore.Repository
	archive  RawArchive
	opts     IngestOptions
	validate *validator.Validate
	log      *logging.Logger

	// sleep is swapped out by tests to fake the polling clock.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewIngestService(provider GameDataProvider, games game.Repository, players boxscore.Repository, archive RawArchive, opts IngestOptions, log *logging.Logger) *IngestService {
	if log == nil {
		log = logging.Default()
	}
	return &IngestService{
		provider: provider,
		games:    games,
		players:  players,
		archive:  archive,
		opts:     opts.withDefaults(),
		validate: validator.New(),
		log:      log,
		sleep:    sleepCtx,
	}
}

// Run ingests all of the team's games on the date. With wait, the
// schedule is re-polled until every game is final or the max wait
// elapses; whatever is on the schedule by then is ingested.
func (s *IngestService) Run(ctx context.Context, teamID int64, date string, wait bool) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestService.Run")
	defer span.End()

	if teamID <= 0 {
		return IngestResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if date == "" {
		return IngestResult{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	schedule, err := s.provider.ScheduleGames(ctx, teamID, date)
	if err != nil {
		return IngestResult{}, fmt.Errorf("fetch schedule team=%d date=%s: %w", teamID, date, err)
	}
	if len(schedule) == 0 {
		return IngestResult{}, fmt.Errorf("%w: no games for team=%d date=%s", ErrNotFound, teamID, date)
	}

	var result IngestResult
	if wait {
		schedule, result.WaitedFor, err = s.waitUntilFinal(ctx, teamID, date, schedule)
		if err != nil {
			return IngestResult{}, err
		}
	}

	for _, g := range schedule {
		result.GamePks = append(result.GamePks, g.GamePk)
	}
	sort.Slice(result.GamePks, func(i, j int) bool { return result.GamePks[i] < result.GamePks[j] })

	var kept, dropped atomic.Int64
	errs := make(chan error, len(schedule))

	pool, err := ants.NewPool(s.opts.Workers)
	if err != nil {
		return IngestResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, scheduled := range schedule {
		scheduled := scheduled
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			k, d, err := s.ingestGame(ctx, scheduled)
			kept.Add(int64(k))
			dropped.Add(int64(d))
			if err != nil {
				errs <- err
			}
		}); err != nil {
			workers.Done()
			return IngestResult{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}
	workers.Wait()
	close(errs)

	result.PlayersKept = int(kept.Load())
	result.PlayersDropped = int(dropped.Load())
	result.GamesIngested = len(schedule)

	if err := <-errs; err != nil {
		return result, err
	}
	return result, nil
}

func (s *IngestService) ingestGame(ctx context.Context, scheduled ScheduledGame) (kept, dropped int, err error) {
	feed, err := s.provider.FeedLive(ctx, scheduled.GamePk)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch feed game=%d: %w", scheduled.GamePk, err)
	}

	if s.archive != nil && len(feed.Raw) > 0 {
		date := feed.Summary.GameDate
		if date == "" {
			date = scheduled.OfficialDate
		}
		if err := s.archive.ArchiveRaw(ctx, date, scheduled.GamePk, feed.Raw); err != nil {
			// Archival is best effort; the parsed rows are the product.
			s.log.WarnContext(ctx, "archive raw feed failed", "game_id", scheduled.GamePk, "error", err)
		}
	}

	players := make([]boxscore.PlayerLine, 0, len(feed.Players))
	for _, p := range feed.Players {
		p.Annotate()
		if err := s.validate.Struct(p); err != nil {
			dropped++
			s.log.WarnContext(ctx, "dropping invalid box score row",
				"game_id", scheduled.GamePk,
				"player_id", p.PlayerID,
				"error", err,
			)
			continue
		}
		players = append(players, p)
	}
	kept = len(players)

	if err := s.games.SaveGame(ctx, feed.Summary, feed.Linescore); err != nil {
		return kept, dropped, fmt.Errorf("save game=%d: %w", scheduled.GamePk, err)
	}
	if err := s.players.SavePlayers(ctx, scheduled.GamePk, players); err != nil {
		return kept, dropped, fmt.Errorf("save players game=%d: %w", scheduled.GamePk, err)
	}

	s.log.InfoContext(ctx, "game ingested",
		"game_id", scheduled.GamePk,
		"status", feed.Summary.Status,
		"players", kept,
		"dropped", dropped,
	)
	return kept, dropped, nil
}

// waitUntilFinal re-polls the schedule until every game reports Final or
// the max wait elapses, and returns the last schedule seen.
func (s *IngestService) waitUntilFinal(ctx context.Context, teamID int64, date string, schedule []ScheduledGame) ([]ScheduledGame, time.Duration, error) {
	var waited time.Duration
	for {
		if allFinal(schedule) {
			return schedule, waited, nil
		}
		if waited >= s.opts.MaxWait {
			s.log.WarnContext(ctx, "max wait reached before all games final",
				"team_id", teamID,
				"date", date,
				"waited", waited.String(),
			)
			return schedule, waited, nil
		}

		if err := s.sleep(ctx, s.opts.PollInterval); err != nil {
			return nil, waited, err
		}
		waited += s.opts.PollInterval

		next, err := s.provider.ScheduleGames(ctx, teamID, date)
		if err != nil {
			return nil, waited, fmt.Errorf("poll schedule team=%d date=%s: %w", teamID, date, err)
		}
		if len(next) > 0 {
			schedule = next
		}
	}
}

func allFinal(schedule []ScheduledGame) bool {
	for _, g := range schedule {
		if !statusIsFinal(g.Status) {
			return false
		}
	}
	return true
}

func statusIsFinal(status string) bool {
	return status == "Final" || status == "Game Over" || status == "Completed Early"
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
