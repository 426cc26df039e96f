package database

import (
	"context"
	"strings"

	"github.com/charmbracelet/soft-orgs/pkg/store"
)

// batchSize is the number of rows written per INSERT statement.
const batchSize = 100

type datastore struct {
	*orgStore
	*userStore
}

// New returns a new store.Store backed by the database.
func New(_ context.Context) store.Store {
	return &datastore{
		orgStore:  &orgStore{},
		userStore: &userStore{},
	}
}

// placeholders returns "(?, ?), (?, ?)" for rows rows of cols columns.
func placeholders(rows, cols int) string {
	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", cols), ", ") + ")"
	return strings.TrimSuffix(strings.Repeat(row+", ", rows), ", ")
}
