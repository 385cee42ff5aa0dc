package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/digest"
	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/domain/stats"
	"github.com/dugoutlabs/dugout/internal/domain/team"
	"github.com/dugoutlabs/dugout/internal/platform/cache"
	"github.com/dugoutlabs/dugout/internal/platform/logging"
)

type stubGameRepo struct {
	summary   game.Summary
	linescore []game.LinescoreRow
	findErr   error
}

func (s *stubGameRepo) SaveGame(context.Context, game.Summary, []game.LinescoreRow) error {
	return nil
}

func (s *stubGameRepo) FindFinalSummary(_ context.Context, date string, ref team.Ref) (game.Summary, error) {
	if s.findErr != nil {
		return game.Summary{}, s.findErr
	}
	if s.summary.GameDate != date {
		return game.Summary{}, game.ErrNotFound
	}
	return s.summary, nil
}

func (s *stubGameRepo) Linescore(context.Context, int64) ([]game.LinescoreRow, error) {
	return s.linescore, nil
}

type stubPlayerRepo struct {
	players []boxscore.PlayerLine
}

func (s *stubPlayerRepo) SavePlayers(context.Context, int64, []boxscore.PlayerLine) error {
	return nil
}

func (s *stubPlayerRepo) PlayersForTeam(context.Context, int64, int64) ([]boxscore.PlayerLine, error) {
	return s.players, nil
}

type stubDigestRepo struct {
	saved []digest.Digest
	err   error
}

func (s *stubDigestRepo) SaveDigest(_ context.Context, d digest.Digest) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, d)
	return nil
}

func fixtureSummary() game.Summary {
	return game.Summary{
		GamePk:       777001,
		GameDate:     "2025-08-28",
		Status:       "Final",
		AwayTeamID:   121,
		AwayTeamName: "New York Mets",
		AwayScore:    5,
		HomeTeamID:   143,
		HomeTeamName: "Philadelphia Phillies",
		HomeScore:    3,
	}
}

func fixtureLinescore() []game.LinescoreRow {
	return []game.LinescoreRow{
		{GamePk: 777001, Inning: 1, AwayRuns: 2, HomeRuns: 0},
		{GamePk: 777001, Inning: 2, AwayRuns: 0, HomeRuns: 1},
		{GamePk: 777001, Inning: 3, AwayRuns: 3, HomeRuns: 2},
	}
}

func fixturePlayers() []boxscore.PlayerLine {
	slugger := boxscore.PlayerLine{
		GamePk: 777001, TeamID: 121, TeamName: "New York Mets",
		PlayerID: 501, PlayerName: "Pete Alonso",
		Batted:  true,
		Batting: stats.BattingLine{AtBats: 4, Hits: 3, HomeRuns: 2, RBI: 4, Runs: 2},
	}
	contact := boxscore.PlayerLine{
		GamePk: 777001, TeamID: 121, TeamName: "New York Mets",
		PlayerID: 502, PlayerName: "Francisco Lindor",
		Batted:  true,
		Batting: stats.BattingLine{AtBats: 4, Hits: 1, Doubles: 1, Runs: 1},
	}
	starter := boxscore.PlayerLine{
		GamePk: 777001, TeamID: 121, TeamName: "New York Mets",
		PlayerID: 601, PlayerName: "Kodai Senga",
		Pitched: true, Started: true,
		Pitching: stats.PitchingLine{Outs: 19, Hits: 5, EarnedRuns: 2, Walks: 2, Strikeouts: 8},
	}
	closer := boxscore.PlayerLine{
		GamePk: 777001, TeamID: 121, TeamName: "New York Mets",
		PlayerID: 602, PlayerName: "Edwin Diaz",
		Pitched:  true,
		Pitching: stats.PitchingLine{Outs: 3, Strikeouts: 2},
	}
	lines := []boxscore.PlayerLine{slugger, contact, starter, closer}
	for i := range lines {
		lines[i].Annotate()
	}
	return lines
}

func newTestDigestService(games *stubGameRepo, players *stubPlayerRepo, digests *stubDigestRepo, odds *OddsService) *DigestService {
	svc := NewDigestService(games, players, digests, odds, logging.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestDigestBuild_EndToEnd(t *testing.T) {
	t.Parallel()

	games := &stubGameRepo{summary: fixtureSummary(), linescore: fixtureLinescore()}
	players := &stubPlayerRepo{players: fixturePlayers()}
	svc := newTestDigestService(games, players, nil, nil)

	d, err := svc.Build(context.Background(), team.Ref{ID: 121}, "2025-08-28")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.GamePk != 777001 || d.TeamID != 121 || d.TeamName != "New York Mets" {
		t.Fatalf("unexpected digest identity: %+v", d)
	}

	md := d.Markdown
	if !strings.Contains(md, "## Final: New York Mets 5-3 Philadelphia Phillies") {
		t.Fatalf("missing headline:\n%s", md)
	}
	if !strings.Contains(md, "Away: 2 0 3") || !strings.Contains(md, "Home: 0 1 2") {
		t.Fatalf("missing or misordered linescore:\n%s", md)
	}
	if !strings.Contains(md, "### Top Batter for New York Mets") || !strings.Contains(md, "Pete Alonso") {
		t.Fatalf("missing top batter:\n%s", md)
	}
	if !strings.Contains(md, "- SP Kodai Senga") || !strings.Contains(md, "6.1 IP") {
		t.Fatalf("missing starter line:\n%s", md)
	}
	if !strings.Contains(md, "- RP Edwin Diaz") {
		t.Fatalf("missing reliever line:\n%s", md)
	}
	if !strings.Contains(md, "### Team Totals") {
		t.Fatalf("missing team totals:\n%s", md)
	}
	if !strings.Contains(md, "Pete Alonso: 3 H, 2 HR, 4 RBI") {
		t.Fatalf("missing notable batter:\n%s", md)
	}
	if !strings.Contains(md, "Kodai Senga: 8 SO, quality start") {
		t.Fatalf("missing notable pitcher:\n%s", md)
	}
	if strings.Contains(md, "postseason odds") {
		t.Fatalf("odds line should be absent without an estimator:\n%s", md)
	}
}

func TestDigestBuild_HomeTeamPerspective(t *testing.T) {
	t.Parallel()

	games := &stubGameRepo{summary: fixtureSummary(), linescore: fixtureLinescore()}
	svc := newTestDigestService(games, &stubPlayerRepo{}, nil, nil)

	d, err := svc.Build(context.Background(), team.Ref{Name: "philadelphia phillies"}, "2025-08-28")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(d.Markdown, "## Final: Philadelphia Phillies 3-5 New York Mets") {
		t.Fatalf("home perspective headline wrong:\n%s", d.Markdown)
	}
}

func TestDigestBuild_IncludesOddsLine(t *testing.T) {
	t.Parallel()

	provider := &stubStandingsProvider{records: []map[string]any{
		standingRecord(121, "New York Mets", "East", 80, 55),
		standingRecord(143, "Philadelphia Phillies", "East", 75, 60),
	}}
	odds := NewOddsService(provider, cache.NewStore(time.Minute), logging.NewNop())

	games := &stubGameRepo{summary: fixtureSummary(), linescore: fixtureLinescore()}
	svc := newTestDigestService(games, &stubPlayerRepo{}, nil, odds)

	d, err := svc.Build(context.Background(), team.Ref{ID: 121}, "2025-08-28")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(d.Markdown, "### New York Mets postseason odds: ") {
		t.Fatalf("missing odds line:\n%s", d.Markdown)
	}
}

func TestDigestBuild_MissingGameIsNotFound(t *testing.T) {
	t.Parallel()

	games := &stubGameRepo{summary: fixtureSummary()}
	svc := newTestDigestService(games, &stubPlayerRepo{}, nil, nil)

	_, err := svc.Build(context.Background(), team.Ref{ID: 121}, "2025-06-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDigestBuild_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newTestDigestService(&stubGameRepo{}, &stubPlayerRepo{}, nil, nil)

	if _, err := svc.Build(context.Background(), team.Ref{}, "2025-08-28"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty team, got %v", err)
	}
	if _, err := svc.Build(context.Background(), team.Ref{ID: 121}, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty date, got %v", err)
	}
}

func TestDigestSave_PersistsAndStampsKeys(t *testing.T) {
	t.Parallel()

	digests := &stubDigestRepo{}
	svc := newTestDigestService(&stubGameRepo{summary: fixtureSummary(), linescore: fixtureLinescore()}, &stubPlayerRepo{}, digests, nil)

	d, err := svc.Build(context.Background(), team.Ref{ID: 121}, "2025-08-28")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := svc.Save(context.Background(), d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(digests.saved) != 1 {
		t.Fatalf("expected one saved digest, got %d", len(digests.saved))
	}
	got := digests.saved[0]
	if got.GamePk != 777001 || got.TeamID != 121 || got.GameDate != "2025-08-28" {
		t.Fatalf("unexpected digest row: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be stamped")
	}
}
