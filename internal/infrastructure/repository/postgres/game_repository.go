package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/domain/team"
	qb "github.com/dugoutlabs/dugout/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// SaveGame replaces the summary and linescore rows for the game in one
// transaction.
func (r *GameRepository) SaveGame(ctx context.Context, summary game.Summary, linescore []game.LinescoreRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save game: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"game_linescore", "game_summaries"} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("game_id", summary.GamePk)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s game_id=%d: %w", table, summary.GamePk, err)
		}
	}

	query, args, err := qb.InsertModel("game_summaries", summaryInsertModelFromDomain(summary), "")
	if err != nil {
		return fmt.Errorf("build insert summary query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert summary game_id=%d: %w", summary.GamePk, err)
	}

	for _, inning := range linescore {
		for _, side := range []struct {
			isHome bool
			runs   int
		}{
			{false, inning.AwayRuns},
			{true, inning.HomeRuns},
		} {
			row := linescoreTableModel{
				GameID:    summary.GamePk,
				IsHome:    side.isHome,
				InningNum: inning.Inning,
				Runs:      side.runs,
			}
			query, args, err := qb.InsertModel("game_linescore", row, "")
			if err != nil {
				return fmt.Errorf("build insert linescore query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert linescore game_id=%d inning=%d: %w", summary.GamePk, inning.Inning, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save game tx: %w", err)
	}
	return nil
}

func (r *GameRepository) FindFinalSummary(ctx context.Context, date string, ref team.Ref) (game.Summary, error) {
	builder := qb.Select("*").From("game_summaries").
		Where(
			qb.Eq("game_date", date),
			qb.Expr("LOWER(status) LIKE ?", "final%"),
		)
	if ref.ID != 0 {
		builder = builder.Where(qb.Expr("(away_team_id = ? OR home_team_id = ?)", ref.ID, ref.ID))
	} else {
		name := strings.ToLower(strings.TrimSpace(ref.Name))
		builder = builder.Where(qb.Expr("(LOWER(away_team_name) = ? OR LOWER(home_team_name) = ?)", name, name))
	}

	query, args, err := builder.
		OrderBy("ingested_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Summary{}, fmt.Errorf("build find final summary query: %w", err)
	}

	var model gameSummaryTableModel
	if err := r.db.GetContext(ctx, &model, query, args...); err != nil {
		if isNotFound(err) {
			return game.Summary{}, game.ErrNotFound
		}
		return game.Summary{}, fmt.Errorf("find final summary date=%s team=%s: %w", date, ref, err)
	}
	return model.toDomain(), nil
}

func (r *GameRepository) Linescore(ctx context.Context, gamePk int64) ([]game.LinescoreRow, error) {
	query, args, err := qb.Select("game_id", "is_home", "inning_num", "runs").
		From("game_linescore").
		Where(qb.Eq("game_id", gamePk)).
		OrderBy("inning_num", "is_home").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build linescore query: %w", err)
	}

	var models []linescoreTableModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("load linescore game_id=%d: %w", gamePk, err)
	}

	byInning := map[int]*game.LinescoreRow{}
	var order []int
	for _, m := range models {
		row, ok := byInning[m.InningNum]
		if !ok {
			row = &game.LinescoreRow{GamePk: gamePk, Inning: m.InningNum}
			byInning[m.InningNum] = row
			order = append(order, m.InningNum)
		}
		if m.IsHome {
			row.HomeRuns = m.Runs
		} else {
			row.AwayRuns = m.Runs
		}
	}

	out := make([]game.LinescoreRow, 0, len(order))
	for _, num := range order {
		out = append(out, *byInning[num])
	}
	return out, nil
}
