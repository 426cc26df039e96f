package migrate

import (
	"context"

	"github.com/charmbracelet/soft-orgs/pkg/db"
)

const (
	userIndexesName    = "user indexes"
	userIndexesVersion = 2
)

var userIndexes = Migration{
	Version: userIndexesVersion,
	Name:    userIndexesName,
	Migrate: func(ctx context.Context, tx *db.Tx) error {
		return migrateUp(ctx, tx, userIndexesVersion, userIndexesName)
	},
	Rollback: func(ctx context.Context, tx *db.Tx) error {
		return migrateDown(ctx, tx, userIndexesVersion, userIndexesName)
	},
}
