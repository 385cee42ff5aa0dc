// Package jsonfile is the local-disk sink: per-game JSON triplets plus a
// raw feed archive, laid out as
//
//	<dir>/<gamePk>_summary.json
//	<dir>/<gamePk>_linescore.json
//	<dir>/<gamePk>_players.json
//	<dir>/raw/<date>/game_<gamePk>.json
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/digest"
	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/domain/team"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) SaveGame(_ context.Context, summary game.Summary, linescore []game.LinescoreRow) error {
	rows := make([]linescoreRow, 0, len(linescore)*2)
	for _, inning := range linescore {
		rows = append(rows, linescoreRow{GameID: summary.GamePk, IsHome: false, InningNum: inning.Inning, Runs: inning.AwayRuns})
	}
	for _, inning := range linescore {
		rows = append(rows, linescoreRow{GameID: summary.GamePk, IsHome: true, InningNum: inning.Inning, Runs: inning.HomeRuns})
	}

	if err := s.writeJSON(s.gameFile(summary.GamePk, "summary"), summaryRowFromDomain(summary)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := s.writeJSON(s.gameFile(summary.GamePk, "linescore"), rows); err != nil {
		return fmt.Errorf("write linescore: %w", err)
	}
	return nil
}

func (s *Store) FindFinalSummary(_ context.Context, date string, ref team.Ref) (game.Summary, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*_summary.json"))
	if err != nil {
		return game.Summary{}, fmt.Errorf("scan summaries: %w", err)
	}

	// Newest first, like the warehouse lookup ordering.
	sort.Slice(matches, func(i, j int) bool {
		return fileModTime(matches[i]).After(fileModTime(matches[j]))
	})

	for _, path := range matches {
		var row summaryRow
		if err := s.readJSON(path, &row); err != nil {
			continue
		}
		summary := row.toDomain()
		if summary.GameDate != date || !summary.IsFinal() {
			continue
		}
		if ref.Matches(summary.AwayTeamID, summary.AwayTeamName) || ref.Matches(summary.HomeTeamID, summary.HomeTeamName) {
			return summary, nil
		}
	}
	return game.Summary{}, game.ErrNotFound
}

func (s *Store) Linescore(_ context.Context, gamePk int64) ([]game.LinescoreRow, error) {
	var rows []linescoreRow
	if err := s.readJSON(s.gameFile(gamePk, "linescore"), &rows); err != nil {
		if os.IsNotExist(err) {
			return nil, game.ErrNotFound
		}
		return nil, fmt.Errorf("read linescore: %w", err)
	}

	byInning := map[int]*game.LinescoreRow{}
	var innings []int
	for _, row := range rows {
		out, ok := byInning[row.InningNum]
		if !ok {
			out = &game.LinescoreRow{GamePk: gamePk, Inning: row.InningNum}
			byInning[row.InningNum] = out
			innings = append(innings, row.InningNum)
		}
		if row.IsHome {
			out.HomeRuns = row.Runs
		} else {
			out.AwayRuns = row.Runs
		}
	}
	sort.Ints(innings)

	out := make([]game.LinescoreRow, 0, len(innings))
	for _, num := range innings {
		out = append(out, *byInning[num])
	}
	return out, nil
}

func (s *Store) SavePlayers(_ context.Context, gamePk int64, players []boxscore.PlayerLine) error {
	rows := make([]playerRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, playerRowsFromDomain(p)...)
	}
	if err := s.writeJSON(s.gameFile(gamePk, "players"), rows); err != nil {
		return fmt.Errorf("write players: %w", err)
	}
	return nil
}

func (s *Store) PlayersForTeam(_ context.Context, gamePk, teamID int64) ([]boxscore.PlayerLine, error) {
	var rows []playerRow
	if err := s.readJSON(s.gameFile(gamePk, "players"), &rows); err != nil {
		if os.IsNotExist(err) {
			return nil, game.ErrNotFound
		}
		return nil, fmt.Errorf("read players: %w", err)
	}

	var ours []playerRow
	for _, row := range rows {
		if row.TeamID == teamID {
			ours = append(ours, row)
		}
	}
	return mergePlayerRows(ours), nil
}

func (s *Store) SaveDigest(_ context.Context, d digest.Digest) error {
	row := digestRow{
		GameID:    d.GamePk,
		TeamID:    d.TeamID,
		TeamName:  d.TeamName,
		GameDate:  d.GameDate,
		DigestMD:  d.Markdown,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.writeJSON(s.gameFile(d.GamePk, "digest"), row); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}

// ArchiveRaw drops the unparsed feed body under raw/<date>/.
func (s *Store) ArchiveRaw(_ context.Context, date string, gamePk int64, payload []byte) error {
	if date == "" {
		date = "unknown"
	}
	dir := filepath.Join(s.dir, "raw", date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create raw dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("game_%d.json", gamePk))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write raw feed: %w", err)
	}
	return nil
}

func (s *Store) gameFile(gamePk int64, kind string) string {
	return filepath.Join(s.dir, strconv.FormatInt(gamePk, 10)+"_"+kind+".json")
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(data, v)
}

func fileModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
