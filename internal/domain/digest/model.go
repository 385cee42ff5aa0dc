// Package digest models the rendered game recap.
package digest

import (
	"context"
	"time"
)

// Digest is one team's markdown recap of one final game, keyed by
// (game, team).
type Digest struct {
	GamePk    int64  `validate:"required,gt=0"`
	TeamID    int64  `validate:"required,gt=0"`
	TeamName  string `validate:"required"`
	GameDate  string `validate:"required"`
	Markdown  string `validate:"required"`
	CreatedAt time.Time
}

// Repository persists rendered digests.
type Repository interface {
	// SaveDigest replaces any previous digest for the same game and team.
	SaveDigest(ctx context.Context, d Digest) error
}
