package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.TODO(), "invalid", "")
	if err == nil {
		t.Fatal("Open(invalid) => nil, want error")
	}
	if !strings.Contains(err.Error(), "unknown driver") {
		t.Errorf("Open(invalid) => %v, want error containing 'unknown driver'", err)
	}
}

func openTemp(t *testing.T) *DB {
	t.Helper()
	d, err := Open(context.TODO(), "sqlite", filepath.Join(t.TempDir(), "orgs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestTransaction(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	d := openTemp(t)

	_, err := d.ExecContext(ctx, "CREATE TABLE plans (name TEXT PRIMARY KEY)")
	is.NoErr(err)

	is.NoErr(d.TransactionContext(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO plans (name) VALUES (?)"), "pro")
		return err
	}))

	boom := errors.New("boom")
	err = d.TransactionContext(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO plans (name) VALUES (?)"), "basic"); err != nil {
			return err
		}
		return boom
	})
	is.True(errors.Is(err, boom))

	var names []string
	is.NoErr(d.SelectContext(ctx, &names, "SELECT name FROM plans"))
	is.Equal(names, []string{"pro"})

	_, err = d.ExecContext(ctx, d.Rebind("INSERT INTO plans (name) VALUES (?)"), "pro")
	is.True(errors.Is(WrapError(err), ErrDuplicateKey))

	var name string
	err = d.GetContext(ctx, &name, d.Rebind("SELECT name FROM plans WHERE name = ?"), "enterprise")
	is.True(errors.Is(WrapError(err), ErrRecordNotFound))
}

func TestContext(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	is.True(FromContext(ctx) == nil)
	d := openTemp(t)
	is.Equal(FromContext(WithContext(ctx, d)), d)
}

func TestWrapErrorPassThrough(t *testing.T) {
	for _, e := range []error{
		fmt.Errorf("foo"),
		errors.New("bar"),
	} {
		if err := WrapError(e); err != e {
			t.Errorf("WrapError(%v) => %v, want %v", e, err, e)
		}
	}
	if err := WrapError(nil); err != nil {
		t.Errorf("WrapError(nil) => %v, want nil", err)
	}
}

func TestWrapErrorNoRows(t *testing.T) {
	if err := WrapError(sql.ErrNoRows); err != ErrRecordNotFound {
		t.Errorf("WrapError(sql.ErrNoRows) => %v, want %v", err, ErrRecordNotFound)
	}
	if err := WrapError(fmt.Errorf("get org: %w", sql.ErrNoRows)); err != ErrRecordNotFound {
		t.Errorf("WrapError(wrapped sql.ErrNoRows) => %v, want %v", err, ErrRecordNotFound)
	}
}
