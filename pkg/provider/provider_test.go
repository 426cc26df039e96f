package provider

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/cache/lru"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/db/migrate"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/store"
	"github.com/charmbracelet/soft-orgs/pkg/store/database"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func counting(orgs []proto.Organization, calls *atomic.Int32) Provider {
	return Func(func(ctx context.Context) ([]proto.Organization, error) {
		calls.Add(1)
		return orgs, nil
	})
}

func TestDelayed(t *testing.T) {
	is := is.New(t)
	orgs := []proto.Organization{{ID: 1}}

	start := time.Now()
	got, err := Delayed(Static(orgs), 30*time.Millisecond).Organizations(context.TODO())
	is.NoErr(err)
	is.Equal(got, orgs)
	is.True(time.Since(start) >= 30*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.TODO(), 10*time.Millisecond)
	defer cancel()
	_, err = Delayed(Static(orgs), time.Minute).Organizations(ctx)
	is.True(errors.Is(err, context.DeadlineExceeded))

	// No delay returns the provider as is.
	p := Static(orgs)
	is.Equal(Delayed(p, 0), p)
}

func TestCached(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	c, err := lru.NewCache(ctx, lru.WithSize(2))
	is.NoErr(err)

	var calls atomic.Int32
	orgs := []proto.Organization{{ID: 1}, {ID: 2}}
	cached := NewCached(counting(orgs, &calls), c, "orgs")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cached.Organizations(ctx)
			is.NoErr(err)
			is.Equal(len(got), 2)
		}()
	}
	wg.Wait()
	_, err = cached.Organizations(ctx)
	is.NoErr(err)
	is.True(calls.Load() <= 8)
	first := calls.Load()

	_, err = cached.Organizations(ctx)
	is.NoErr(err)
	is.Equal(calls.Load(), first)

	cached.Invalidate(ctx)
	_, err = cached.Organizations(ctx)
	is.NoErr(err)
	is.Equal(calls.Load(), first+1)
}

func TestCachedErrorNotStored(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	c, err := lru.NewCache(ctx)
	is.NoErr(err)

	boom := errors.New("boom")
	var calls atomic.Int32
	cached := NewCached(Func(func(context.Context) ([]proto.Organization, error) {
		calls.Add(1)
		return nil, boom
	}), c, "orgs")

	_, err = cached.Organizations(ctx)
	is.True(errors.Is(err, boom))
	_, err = cached.Organizations(ctx)
	is.True(errors.Is(err, boom))
	is.Equal(calls.Load(), int32(2))
	is.Equal(c.Len(ctx), int64(0))
}

func TestInstrument(t *testing.T) {
	is := is.New(t)
	boom := errors.New("boom")
	before := testutil.ToFloat64(loadErrors.WithLabelValues("test"))

	_, err := Instrument("test", Func(func(context.Context) ([]proto.Organization, error) {
		return nil, boom
	})).Organizations(context.TODO())
	is.True(errors.Is(err, boom))
	is.Equal(testutil.ToFloat64(loadErrors.WithLabelValues("test")), before+1)

	_, err = Instrument("test", Static(nil)).Organizations(context.TODO())
	is.NoErr(err)
}

func TestContext(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	is.True(FromContext(ctx) == nil)
	p := Static(nil)
	is.True(FromContext(WithContext(ctx, p)) != nil)
}

func TestNewMock(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Dataset.Organizations = 5
	cfg.Dataset.Users = 3
	cfg.Dataset.Delay = 0
	cfg.Dataset.Seed = 11
	ctx := config.WithContext(context.TODO(), cfg)

	ds, err := New(ctx)
	is.NoErr(err)
	is.Equal(ds.Source(), "mock")

	a, err := ds.Organizations(ctx)
	is.NoErr(err)
	is.Equal(len(a), 5)

	b, err := ds.Organizations(ctx)
	is.NoErr(err)
	is.True(&a[0] == &b[0]) // served from the cache

	is.NoErr(ds.Refresh(ctx))
	c, err := ds.Organizations(ctx)
	is.NoErr(err)
	is.True(&a[0] != &c[0])
	for i := range a {
		is.Equal(a[i].CompanyName, c[i].CompanyName) // same seed
	}
}

func TestNewErrors(t *testing.T) {
	is := is.New(t)
	_, err := New(context.TODO())
	is.True(errors.Is(err, config.ErrNilConfig))

	cfg := config.DefaultConfig()
	cfg.Dataset.Source = "db"
	_, err = New(config.WithContext(context.TODO(), cfg))
	is.True(errors.Is(err, ErrNoDatabase))

	cfg = config.DefaultConfig()
	cfg.Cache.Backend = "memcached"
	_, err = New(config.WithContext(context.TODO(), cfg))
	is.True(err != nil)
}

func TestStoreRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := db.Open(ctx, "sqlite", t.TempDir()+"/orgs.db?_pragma=foreign_keys(1)")
	is.NoErr(err)
	t.Cleanup(func() { _ = dbx.Close() })
	is.NoErr(migrate.Migrate(ctx, dbx))
	s := database.New(ctx)

	orgs, err := Generator{Count: 12, MaxUsers: 40, Seed: 5, Now: func() time.Time { return refTime }}.Organizations(ctx)
	is.NoErr(err)
	is.NoErr(Save(ctx, dbx, s, orgs))
	// Saving twice replaces the dataset.
	is.NoErr(Save(ctx, dbx, s, orgs))

	cfg := config.DefaultConfig()
	cfg.Dataset.Source = "db"
	cfg.Dataset.Delay = 0
	ctx = config.WithContext(ctx, cfg)
	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, s)

	ds, err := New(ctx)
	is.NoErr(err)
	got, err := ds.Organizations(ctx)
	is.NoErr(err)
	is.Equal(len(got), len(orgs))
	for i := range orgs {
		is.Equal(got[i].CompanyName, orgs[i].CompanyName)
		is.Equal(got[i].Plan, orgs[i].Plan)
		is.Equal(got[i].NumUsers(), orgs[i].NumUsers())
		for j := range orgs[i].Users {
			is.Equal(got[i].Users[j].Email, orgs[i].Users[j].Email)
			is.Equal(got[i].Users[j].Status, orgs[i].Users[j].Status)
			is.True(got[i].Users[j].LastLogin.Equal(orgs[i].Users[j].LastLogin))
		}
	}
}
