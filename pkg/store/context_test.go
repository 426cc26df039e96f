package store_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/soft-orgs/pkg/store"
	"github.com/charmbracelet/soft-orgs/pkg/store/database"
	"github.com/matryer/is"
)

func TestContext(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	is.True(store.FromContext(ctx) == nil)

	s := database.New(ctx)
	is.Equal(store.FromContext(store.WithContext(ctx, s)), s)
}
