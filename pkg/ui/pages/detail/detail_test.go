package detail

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/test"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
	"github.com/matryer/is"
)

func newDetail(tb testing.TB, org proto.Organization) *Detail {
	tb.Helper()
	c := common.NewCommon(context.TODO(), lipgloss.NewRenderer(io.Discard), 100, 30)
	return New(c, org, Options{RowHeight: 2, Overscan: 2})
}

func isClose(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(CloseMsg)
	return ok
}

func TestView(t *testing.T) {
	is := is.New(t)
	d := newDetail(t, test.Org(7, "Acme Corp", "Jane Doe", proto.ProPlan, 3))
	view := d.View()
	for _, s := range []string{
		"Acme Corp", "pro", "#7", "Jane Doe", "Primary Admin",
		"Invitations Remaining", "70", "User 1", "user1@email.com",
		"admin", "active", "Edit", "Remove",
		"Add User", "Cancel", "Save Changes", "Found 3 of 3 users",
	} {
		is.True(strings.Contains(view, s)) // view contains s
	}
	is.Equal(lipgloss.Height(view), 30)
}

func TestSearchUsers(t *testing.T) {
	is := is.New(t)
	d := newDetail(t, test.Org(1, "Acme", "Jane", proto.BasicPlan, 12))
	is.Equal(d.Users().List().Len(), 12)

	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	is.True(d.Users().Focused())
	for _, r := range "user1" {
		d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	// user1, user10, user11 and user12
	is.Equal(d.Users().List().Len(), 4)

	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	is.True(!isClose(cmd))
	is.True(!d.Users().Focused())

	_, cmd = d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	is.True(!isClose(cmd))
	is.Equal(d.Users().Query(), "")

	_, cmd = d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	is.True(isClose(cmd))
}

func TestNoUsers(t *testing.T) {
	is := is.New(t)
	d := newDetail(t, test.Org(1, "Empty", "Jane", proto.BasicPlan, 0))
	is.True(strings.Contains(d.View(), "No users found."))
}

func TestSortUsers(t *testing.T) {
	is := is.New(t)
	d := newDetail(t, test.Org(1, "Acme", "Jane", proto.BasicPlan, 3))

	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	is.Equal(d.Users().List().Sort(), virtual.SortState{Column: "name"})
	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	is.Equal(d.Users().List().Sort(), virtual.SortState{Column: "name", Desc: true})
	is.True(strings.Contains(d.View(), "Name ↓"))

	// Actions cannot be sorted.
	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	is.Equal(d.Users().List().Sort(), virtual.SortState{Column: "name", Desc: true})
}
