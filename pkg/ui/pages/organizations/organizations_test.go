package organizations

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/test"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/soft-orgs/pkg/ui/components/table"
	"github.com/charmbracelet/soft-orgs/pkg/ui/pages/detail"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
	"github.com/matryer/is"
)

var defaultOptions = Options{RowHeight: 1, Overscan: 20, UserRowHeight: 2, UserOverscan: 10}

func newPage(tb testing.TB, p provider.Provider) *Organizations {
	tb.Helper()
	c := common.NewCommon(context.TODO(), lipgloss.NewRenderer(io.Discard), 120, 40)
	o := New(c, p, defaultOptions)
	tb.Cleanup(o.Close)
	return o
}

// loadMsg runs the load command of cmd and returns its result.
func loadMsg(tb testing.TB, cmd tea.Cmd) LoadedMsg {
	tb.Helper()
	if cmd == nil {
		tb.Fatal("no command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if lm, ok := c().(LoadedMsg); ok {
				return lm
			}
		}
		tb.Fatal("no load in batch")
	}
	lm, ok := msg.(LoadedMsg)
	if !ok {
		tb.Fatalf("unexpected message %T", msg)
	}
	return lm
}

func load(tb testing.TB, o *Organizations) {
	tb.Helper()
	o.Update(loadMsg(tb, o.Init()))
}

func names(o *Organizations) []string {
	var s []string
	for _, org := range o.Table().List().Filtered() {
		s = append(s, org.CompanyName)
	}
	return s
}

func TestAsyncLoad(t *testing.T) {
	is := is.New(t)

	users := test.Org(1, "", "", proto.BasicPlan, 1000).Users
	orgs := make([]proto.Organization, 1000)
	for i := range orgs {
		orgs[i] = test.Org(int64(i+1), "Org", "Admin", proto.ProPlan, 0)
		orgs[i].Users = users
		orgs[i].UserCount = len(users)
	}
	delay := 50 * time.Millisecond
	o := newPage(t, provider.Delayed(provider.Static(orgs), delay))

	start := time.Now()
	cmd := o.Init()
	is.True(o.Loading())
	view := o.View()
	is.True(strings.Contains(view, "Loading organizations"))
	is.Equal(o.Table().Renders(), 0)

	msg := loadMsg(t, cmd)
	is.True(time.Since(start) >= delay)
	is.Equal(o.Table().Renders(), 0)

	o.Update(msg)
	is.True(!o.Loading())
	is.Equal(o.Table().List().Total(), 1000)
	is.Equal(o.Table().List().Len(), 1000)
	is.True(strings.Contains(o.View(), "Found 1,000 of 1,000 organizations"))
	is.True(o.Table().Renders() > 0)
}

func TestStaleLoadDiscarded(t *testing.T) {
	is := is.New(t)
	calls := 0
	o := newPage(t, provider.Func(func(context.Context) ([]proto.Organization, error) {
		calls++
		return test.Orgs(calls), nil
	}))

	first := loadMsg(t, o.Init())
	second := loadMsg(t, o.Load())

	o.Update(first)
	is.True(o.Loading())
	is.Equal(o.Table().List().Total(), 0)

	o.Update(second)
	is.True(!o.Loading())
	is.Equal(o.Table().List().Total(), 2)
}

func TestClosedLoadDiscarded(t *testing.T) {
	is := is.New(t)
	o := newPage(t, provider.Delayed(provider.Static(test.Orgs(3)), time.Minute))
	cmd := o.Init()
	o.Close()

	msg := loadMsg(t, cmd)
	is.True(errors.Is(msg.Err, context.Canceled))
	o.Update(msg)
	is.Equal(o.Table().List().Total(), 0)
	is.True(o.Err() == nil)
}

func TestLoadError(t *testing.T) {
	is := is.New(t)
	boom := errors.New("boom")
	o := newPage(t, provider.Func(func(context.Context) ([]proto.Organization, error) {
		return nil, boom
	}))

	_, cmd := o.Update(loadMsg(t, o.Init()))
	is.True(!o.Loading())
	is.True(errors.Is(o.Err(), boom))
	is.Equal(o.Table().List().Len(), 0)
	is.True(cmd != nil)
	_, ok := cmd().(common.ErrorMsg)
	is.True(ok)

	view := o.View()
	is.True(strings.Contains(view, "No organizations found."))
	is.True(strings.Contains(view, "boom"))
}

func TestMissingProvider(t *testing.T) {
	is := is.New(t)
	o := newPage(t, nil)
	is.True(o.Init() == nil)
	is.True(errors.Is(o.Err(), common.ErrMissingProvider))
	is.True(!o.Loading())
}

func TestFilterScenario(t *testing.T) {
	is := is.New(t)
	o := newPage(t, provider.Static([]proto.Organization{
		test.Org(1, "Acme", "Ann", proto.BasicPlan, 1),
		test.Org(2, "Bravo", "Bob", proto.ProPlan, 1),
		test.Org(3, "Acme Two", "Cid", proto.EnterprisePlan, 1),
	}))
	load(t, o)

	o.Table().SetQuery("acme")
	is.Equal(names(o), []string{"Acme", "Acme Two"})
	is.True(strings.Contains(o.View(), "Found 2 of 3 organizations"))

	o.Table().SetQuery("")
	is.Equal(names(o), []string{"Acme", "Bravo", "Acme Two"})

	o.Table().SetQuery("zzz")
	is.Equal(len(names(o)), 0)
	is.True(strings.Contains(o.View(), `No organizations match "zzz".`))
}

func TestEscClearsQuery(t *testing.T) {
	is := is.New(t)
	o := newPage(t, provider.Static([]proto.Organization{
		test.Org(1, "Acme", "Ann", proto.BasicPlan, 1),
		test.Org(2, "Bravo", "Bob", proto.ProPlan, 1),
		test.Org(3, "Acme Two", "Cid", proto.EnterprisePlan, 1),
	}))
	load(t, o)
	l := o.Table().List()

	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	is.True(o.Typing())
	for _, r := range "acme" {
		o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	is.Equal(l.Len(), 2)

	// The first esc blurs the input and keeps the query.
	o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	is.True(!o.Typing())
	is.Equal(o.Table().Query(), "acme")

	o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	is.Equal(o.Table().Query(), "")
	is.Equal(l.Len(), l.Total())
	is.True(strings.Contains(o.View(), "Found 3 of 3 organizations"))
}

func TestSelectAndDismiss(t *testing.T) {
	is := is.New(t)
	o := newPage(t, provider.Static(test.Orgs(500)))
	load(t, o)

	l := o.Table().List()
	o.Table().SetQuery("org 1")
	l.SetSort(virtual.SortState{Column: "company", Desc: true})
	l.ScrollTo(20)
	l.SetCursor(25)
	query, sort, scroll, cursor := l.Query(), l.Sort(), l.ScrollOffset(), l.Cursor()

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	is.True(cmd != nil)
	sel, ok := cmd().(table.SelectMsg[proto.Organization])
	is.True(ok)
	o.Update(sel)
	is.True(o.Selected() != nil)
	is.Equal(o.Selected().ID, sel.Item.ID)
	is.True(o.Detail() != nil)
	is.True(strings.Contains(o.View(), sel.Item.CompanyName))
	is.Equal(o.StatusBarInfo(), "#"+strings.TrimPrefix(sel.Item.CompanyName, "Org "))

	// The detail view has its own query.
	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	is.Equal(o.Detail().Users().Query(), "x")
	is.True(o.Typing())
	o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	o.Update(tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd = o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	is.True(cmd != nil)
	o.Update(cmd())
	is.True(o.Selected() == nil)
	is.True(o.Detail() == nil)

	is.Equal(l.Query(), query)
	is.Equal(l.Sort(), sort)
	is.Equal(l.ScrollOffset(), scroll)
	is.Equal(l.Cursor(), cursor)

	// Reopening starts with a fresh users list.
	o.Update(sel)
	is.Equal(o.Detail().Users().Query(), "")
	o.Update(detail.CloseMsg{})
	is.True(o.Detail() == nil)
}

func TestReload(t *testing.T) {
	is := is.New(t)
	calls := 0
	o := newPage(t, provider.Func(func(context.Context) ([]proto.Organization, error) {
		calls++
		return test.Orgs(calls), nil
	}))
	load(t, o)
	is.Equal(o.Table().List().Total(), 1)

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	is.True(o.Loading())
	o.Update(loadMsg(t, cmd))
	is.Equal(o.Table().List().Total(), 2)
}

func TestSortStatus(t *testing.T) {
	is := is.New(t)
	o := newPage(t, provider.Static(test.Orgs(3)))
	load(t, o)
	is.Equal(o.StatusBarValue(), "")
	is.Equal(o.StatusBarInfo(), "1/3")

	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	is.Equal(o.StatusBarValue(), "Sorted by Users, descending")
	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	is.Equal(o.StatusBarValue(), "Sorted by Users, ascending")
	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	is.Equal(o.StatusBarValue(), "Sorted by Company, ascending")

	// Cycling columns starts each in its first direction.
	for range 3 {
		o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	}
	is.Equal(o.StatusBarValue(), "Sorted by Users, descending")
}
