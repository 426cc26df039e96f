package columns

import (
	"testing"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
	"github.com/matryer/is"
)

func TestOrganizationFields(t *testing.T) {
	is := is.New(t)
	org := proto.Organization{
		CompanyName:          "Acme",
		AdminName:            "Jane Doe",
		Plan:                 proto.EnterprisePlan,
		UserCount:            2,
		InvitationsRemaining: 17,
		Users:                []proto.User{{ID: 1}, {ID: 2}},
	}
	is.Equal(Organizations().Fields(org), []string{"Acme", "Jane Doe", "enterprise", "2", "17"})
	is.Equal(Organizations().Sortable(), []string{CompanyKey, AdminKey, PlanKey, UsersKey, InvitationsKey})
}

func TestUserFields(t *testing.T) {
	is := is.New(t)
	u := proto.User{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "DoeJane@email.com",
		Role:      proto.AdminRole,
		Status:    proto.PendingStatus,
		LastLogin: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
	}
	cols := Users()
	is.Equal(cols.Fields(u), []string{"Jane", "Doe", "DoeJane@email.com", "admin", "pending"})

	c, ok := cols.Get(LastLoginKey)
	is.True(ok)
	is.Equal(c.Text(u), "May 4, 2024")

	c, _ = cols.Get(ActionsKey)
	is.True(!c.Sortable())
}

func TestNumericSort(t *testing.T) {
	is := is.New(t)
	orgs := []proto.Organization{
		{CompanyName: "a", InvitationsRemaining: 100},
		{CompanyName: "b", InvitationsRemaining: 9},
		{CompanyName: "c", InvitationsRemaining: 20},
	}
	sorted := virtual.Sort(orgs, Organizations(), virtual.SortState{Column: InvitationsKey})
	is.Equal(sorted[0].CompanyName, "b")
	is.Equal(sorted[1].CompanyName, "c")
	is.Equal(sorted[2].CompanyName, "a")
	is.Equal(ID(42), "#42")
}

func TestFirstSortDirection(t *testing.T) {
	is := is.New(t)
	l := virtual.NewList(virtual.Options[proto.Organization]{Columns: Organizations()})
	l.SetItems([]proto.Organization{
		{CompanyName: "b", InvitationsRemaining: 5, Users: []proto.User{{ID: 1}}},
		{CompanyName: "a", InvitationsRemaining: 9, Users: []proto.User{{ID: 2}, {ID: 3}}},
	})

	l.ToggleSort(UsersKey)
	is.Equal(l.Sort(), virtual.SortState{Column: UsersKey, Desc: true})
	is.Equal(l.Filtered()[0].CompanyName, "a")

	l.ToggleSort(InvitationsKey)
	is.Equal(l.Sort(), virtual.SortState{Column: InvitationsKey, Desc: true})

	l.ToggleSort(CompanyKey)
	is.Equal(l.Sort(), virtual.SortState{Column: CompanyKey})
	is.Equal(l.Filtered()[0].CompanyName, "a")
}
