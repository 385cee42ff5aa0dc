package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	qb "github.com/dugoutlabs/dugout/internal/platform/querybuilder"
)

type BoxscoreRepository struct {
	db *sqlx.DB
}

func NewBoxscoreRepository(db *sqlx.DB) *BoxscoreRepository {
	return &BoxscoreRepository{db: db}
}

// SavePlayers replaces every box score row for the game in one
// transaction.
func (r *BoxscoreRepository) SavePlayers(ctx context.Context, gamePk int64, players []boxscore.PlayerLine) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("game_boxscore_players").
		Where(qb.Eq("game_id", gamePk)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear players game_id=%d: %w", gamePk, err)
	}

	for _, p := range players {
		for _, row := range boxscoreRowsFromDomain(p) {
			query, args, err := qb.InsertModel("game_boxscore_players", row, "")
			if err != nil {
				return fmt.Errorf("build insert player query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert player game_id=%d player_id=%d role=%s: %w", gamePk, p.PlayerID, row.Role, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save players tx: %w", err)
	}
	return nil
}

func (r *BoxscoreRepository) PlayersForTeam(ctx context.Context, gamePk, teamID int64) ([]boxscore.PlayerLine, error) {
	query, args, err := qb.Select("*").From("game_boxscore_players").
		Where(
			qb.Eq("game_id", gamePk),
			qb.Eq("team_id", teamID),
		).
		OrderBy("player_id", "role").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build players query: %w", err)
	}

	var models []boxscorePlayerTableModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("load players game_id=%d team_id=%d: %w", gamePk, teamID, err)
	}
	return mergeBoxscoreRows(models), nil
}
