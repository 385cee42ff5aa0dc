package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/digest"
	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/domain/stats"
	"github.com/dugoutlabs/dugout/internal/domain/team"
	"github.com/dugoutlabs/dugout/internal/platform/logging"
)

// DigestService renders the markdown recap of a team's most recent final
// game on a date.
type DigestService struct {
	games   game.Repository
	players boxscore.Repository
	digests digest.Repository
	odds    *OddsService
	log     *logging.Logger
	now     func() time.Time
}

func NewDigestService(games game.Repository, players boxscore.Repository, digests digest.Repository, odds *OddsService, log *logging.Logger) *DigestService {
	if log == nil {
		log = logging.Default()
	}
	return &DigestService{
		games:   games,
		players: players,
		digests: digests,
		odds:    odds,
		log:     log,
		now:     time.Now,
	}
}

// Build locates the team's final game for the date in the configured
// sink and renders its digest. A missing game maps to ErrNotFound so
// callers can treat it as "nothing to do".
func (s *DigestService) Build(ctx context.Context, ref team.Ref, date string) (digest.Digest, error) {
	ctx, span := startUsecaseSpan(ctx, "DigestService.Build")
	defer span.End()

	if ref == (team.Ref{}) {
		return digest.Digest{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if strings.TrimSpace(date) == "" {
		return digest.Digest{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	summary, err := s.games.FindFinalSummary(ctx, date, ref)
	if err != nil {
		if errors.Is(err, game.ErrNotFound) {
			return digest.Digest{}, fmt.Errorf("%w: no final game for team=%s date=%s", ErrNotFound, ref, date)
		}
		return digest.Digest{}, fmt.Errorf("find final summary: %w", err)
	}

	own, _, ok := resolveSide(summary, ref)
	if !ok {
		return digest.Digest{}, fmt.Errorf("%w: no final game for team=%s date=%s", ErrNotFound, ref, date)
	}

	linescore, err := s.games.Linescore(ctx, summary.GamePk)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("load linescore: %w", err)
	}
	players, err := s.players.PlayersForTeam(ctx, summary.GamePk, own.TeamID)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("load players: %w", err)
	}

	oddsPct, oddsOK := 0, false
	if s.odds != nil {
		oddsPct, oddsOK = s.odds.Estimate(ctx, team.Ref{ID: own.TeamID, Name: own.TeamName})
	}

	md := renderDigest(summary, ref, linescore, players, oddsPct, oddsOK)
	return digest.Digest{
		GamePk:    summary.GamePk,
		TeamID:    own.TeamID,
		TeamName:  own.TeamName,
		GameDate:  summary.GameDate,
		Markdown:  md,
		CreatedAt: s.now().UTC(),
	}, nil
}

// Save persists the digest and emits the digest_written event.
func (s *DigestService) Save(ctx context.Context, d digest.Digest) error {
	if s.digests == nil {
		return fmt.Errorf("%w: digest sink not configured", ErrDependencyUnavailable)
	}
	if err := s.digests.SaveDigest(ctx, d); err != nil {
		return fmt.Errorf("save digest: %w", err)
	}
	s.log.InfoContext(ctx, "digest_written",
		"game_id", d.GamePk,
		"team_id", d.TeamID,
		"team_name", d.TeamName,
		"game_date", d.GameDate,
	)
	return nil
}

func resolveSide(summary game.Summary, ref team.Ref) (own, opp game.Side, ok bool) {
	if ref.Matches(summary.AwayTeamID, summary.AwayTeamName) {
		return summary.Sides(summary.AwayTeamID)
	}
	if ref.Matches(summary.HomeTeamID, summary.HomeTeamName) {
		return summary.Sides(summary.HomeTeamID)
	}
	return game.Side{}, game.Side{}, false
}

func renderDigest(summary game.Summary, ref team.Ref, linescore []game.LinescoreRow, players []boxscore.PlayerLine, oddsPct int, oddsOK bool) string {
	own, opp, _ := resolveSide(summary, ref)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "## Final: %s %d-%d %s\n\n", own.TeamName, own.Score, opp.Score, opp.TeamName)

	buf.WriteString("### Linescore\n")
	away := make([]string, 0, len(linescore))
	home := make([]string, 0, len(linescore))
	for _, row := range linescore {
		away = append(away, strconv.Itoa(row.AwayRuns))
		home = append(home, strconv.Itoa(row.HomeRuns))
	}
	fmt.Fprintf(buf, "Away: %s\n", strings.Join(away, " "))
	fmt.Fprintf(buf, "Home: %s\n\n", strings.Join(home, " "))

	batters, pitchers := splitRoles(players)

	if top, ok := pickTopBatter(batters); ok {
		d := top.BattingDerived
		fmt.Fprintf(buf, "### Top Batter for %s\n", own.TeamName)
		fmt.Fprintf(buf, "- %s: %.2f BAT_SCORE, %d HR, %d RBI, %s AVG, %s OBP, %s SLG, %s OPS\n\n",
			top.PlayerName, d.GameScore, top.Batting.HomeRuns, top.Batting.RBI,
			fmtRate(d.Average), fmtRate(d.OnBase), fmtRate(d.Slugging), fmtRate(d.OPS))
	}

	sp, spOK := pickStartingPitcher(pitchers)
	rp, rpOK := pickTopReliever(pitchers, sp, spOK)
	if spOK || rpOK {
		fmt.Fprintf(buf, "### Pitching for %s\n", own.TeamName)
		if spOK {
			writePitcherLine(buf, "SP", sp)
		}
		if rpOK {
			writePitcherLine(buf, "RP", rp)
		}
		buf.WriteString("\n")
	}

	writeTeamTotals(buf, batters, pitchers)
	writeNotables(buf, batters, pitchers)

	if oddsOK {
		fmt.Fprintf(buf, "### %s postseason odds: %d%%\n", own.TeamName, oddsPct)
	}

	return buf.String()
}

func writePitcherLine(buf *bytebufferpool.ByteBuffer, role string, p boxscore.PlayerLine) {
	d := p.PitchingDerived
	fmt.Fprintf(buf, "- %s %s: %.2f PITCH_SCORE, %s IP, %.2f ERA, %.2f WHIP\n",
		role, p.PlayerName, d.GameScore, d.InningsText, d.ERA, d.WHIP)
}

func writeTeamTotals(buf *bytebufferpool.ByteBuffer, batters, pitchers []boxscore.PlayerLine) {
	if len(batters) == 0 && len(pitchers) == 0 {
		return
	}
	buf.WriteString("### Team Totals\n")
	if len(batters) > 0 {
		var ab, h, hr, rbi, bb int
		for _, b := range batters {
			ab += b.Batting.AtBats
			h += b.Batting.Hits
			hr += b.Batting.HomeRuns
			rbi += b.Batting.RBI
			bb += b.Batting.Walks
		}
		fmt.Fprintf(buf, "- Batting: %d-for-%d, %d HR, %d RBI, %d BB\n", h, ab, hr, rbi, bb)
	}
	if len(pitchers) > 0 {
		var outs, er, so, bb int
		for _, p := range pitchers {
			outs += p.Pitching.Outs
			er += p.Pitching.EarnedRuns
			so += p.Pitching.Strikeouts
			bb += p.Pitching.Walks
		}
		fmt.Fprintf(buf, "- Pitching: %s IP, %d ER, %d SO, %d BB\n", stats.InningsStringFromOuts(outs), er, so, bb)
	}
	buf.WriteString("\n")
}

// Notables flags box-score lines worth a mention on their own: big hit
// totals, multi-homer games, heavy strikeout outings, quality starts.
func writeNotables(buf *bytebufferpool.ByteBuffer, batters, pitchers []boxscore.PlayerLine) {
	var lines []string
	for _, b := range batters {
		var feats []string
		if b.Batting.Hits >= 3 {
			feats = append(feats, fmt.Sprintf("%d H", b.Batting.Hits))
		}
		if b.Batting.HomeRuns >= 2 {
			feats = append(feats, fmt.Sprintf("%d HR", b.Batting.HomeRuns))
		}
		if b.Batting.RBI >= 4 {
			feats = append(feats, fmt.Sprintf("%d RBI", b.Batting.RBI))
		}
		if b.Batting.StolenBases >= 3 {
			feats = append(feats, fmt.Sprintf("%d SB", b.Batting.StolenBases))
		}
		if len(feats) > 0 {
			lines = append(lines, fmt.Sprintf("- %s: %s", b.PlayerName, strings.Join(feats, ", ")))
		}
	}
	for _, p := range pitchers {
		var feats []string
		if p.Pitching.Strikeouts >= 7 {
			feats = append(feats, fmt.Sprintf("%d SO", p.Pitching.Strikeouts))
		}
		if p.Pitching.Outs >= 18 && p.Pitching.EarnedRuns <= 2 {
			feats = append(feats, "quality start")
		}
		if len(feats) > 0 {
			lines = append(lines, fmt.Sprintf("- %s: %s", p.PlayerName, strings.Join(feats, ", ")))
		}
	}
	if len(lines) == 0 {
		return
	}
	buf.WriteString("### Notables\n")
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

func splitRoles(players []boxscore.PlayerLine) (batters, pitchers []boxscore.PlayerLine) {
	for _, p := range players {
		if p.Batted {
			batters = append(batters, p)
		}
		if p.Pitched {
			pitchers = append(pitchers, p)
		}
	}
	return batters, pitchers
}

func pickTopBatter(batters []boxscore.PlayerLine) (boxscore.PlayerLine, bool) {
	best := boxscore.PlayerLine{}
	found := false
	for _, b := range batters {
		if b.PlateAppearances() == 0 {
			continue
		}
		if !found || b.BattingDerived.GameScore > best.BattingDerived.GameScore {
			best, found = b, true
		}
	}
	return best, found
}

// The starter is whoever carries the started flag; when the feed does
// not flag one, the pitcher with the longest outing stands in.
func pickStartingPitcher(pitchers []boxscore.PlayerLine) (boxscore.PlayerLine, bool) {
	if len(pitchers) == 0 {
		return boxscore.PlayerLine{}, false
	}
	pool := pitchers
	var starters []boxscore.PlayerLine
	for _, p := range pitchers {
		if p.Started {
			starters = append(starters, p)
		}
	}
	if len(starters) > 0 {
		pool = starters
	}
	sorted := append([]boxscore.PlayerLine(nil), pool...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pitching.Outs != sorted[j].Pitching.Outs {
			return sorted[i].Pitching.Outs > sorted[j].Pitching.Outs
		}
		return sorted[i].PitchingDerived.GameScore > sorted[j].PitchingDerived.GameScore
	})
	return sorted[0], true
}

func pickTopReliever(pitchers []boxscore.PlayerLine, starter boxscore.PlayerLine, haveStarter bool) (boxscore.PlayerLine, bool) {
	best := boxscore.PlayerLine{}
	found := false
	for _, p := range pitchers {
		if p.Started {
			continue
		}
		if haveStarter && p.PlayerID == starter.PlayerID {
			continue
		}
		if !found || p.PitchingDerived.GameScore > best.PitchingDerived.GameScore {
			best, found = p, true
		}
	}
	return best, found
}

// fmtRate renders a rate stat the way box scores print them, three
// places with no leading zero (".312").
func fmtRate(x float64) string {
	s := strconv.FormatFloat(x, 'f', 3, 64)
	return strings.TrimPrefix(s, "0")
}
