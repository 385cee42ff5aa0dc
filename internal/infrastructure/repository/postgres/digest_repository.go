package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dugoutlabs/dugout/internal/domain/digest"
	qb "github.com/dugoutlabs/dugout/internal/platform/querybuilder"
)

type digestInsertModel struct {
	GameID    int64     `db:"game_id"`
	TeamID    int64     `db:"team_id"`
	TeamName  string    `db:"team_name"`
	GameDate  string    `db:"game_date"`
	DigestMD  string    `db:"digest_md"`
	CreatedAt time.Time `db:"created_at"`
}

type DigestRepository struct {
	db *sqlx.DB
}

func NewDigestRepository(db *sqlx.DB) *DigestRepository {
	return &DigestRepository{db: db}
}

// SaveDigest replaces any previous digest for the same (game, team) key.
func (r *DigestRepository) SaveDigest(ctx context.Context, d digest.Digest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save digest: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("game_digests").
		Where(
			qb.Eq("game_id", d.GamePk),
			qb.Eq("team_id", d.TeamID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear digest query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear digest game_id=%d team_id=%d: %w", d.GamePk, d.TeamID, err)
	}

	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := digestInsertModel{
		GameID:    d.GamePk,
		TeamID:    d.TeamID,
		TeamName:  d.TeamName,
		GameDate:  d.GameDate,
		DigestMD:  d.Markdown,
		CreatedAt: createdAt,
	}
	query, args, err = qb.InsertModel("game_digests", model, "")
	if err != nil {
		return fmt.Errorf("build insert digest query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert digest game_id=%d team_id=%d: %w", d.GamePk, d.TeamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save digest tx: %w", err)
	}
	return nil
}
