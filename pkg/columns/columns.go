// Package columns defines the columns of the organizations and users tables.
// The same definitions drive sorting, searching and rendering in the TUI and
// the CLI.
package columns

import (
	"strconv"

	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
)

// Organization column keys.
const (
	CompanyKey     = "company"
	AdminKey       = "admin"
	PlanKey        = "plan"
	UsersKey       = "users"
	InvitationsKey = "invitations"
)

// User column keys.
const (
	NameKey      = "name"
	RoleKey      = "role"
	StatusKey    = "status"
	LastLoginKey = "last_login"
	ActionsKey   = "actions"
)

// Organizations returns the columns of the organizations table.
func Organizations() virtual.Columns[proto.Organization] {
	return virtual.Columns[proto.Organization]{
		{
			Key:        CompanyKey,
			Title:      "Company",
			Width:      4,
			Value:      func(o proto.Organization) string { return o.CompanyName },
			Compare:    virtual.CompareString(func(o proto.Organization) string { return o.CompanyName }),
			Searchable: true,
		},
		{
			Key:        AdminKey,
			Title:      "Admin",
			Width:      3,
			Value:      func(o proto.Organization) string { return o.AdminName },
			Compare:    virtual.CompareString(func(o proto.Organization) string { return o.AdminName }),
			Searchable: true,
		},
		{
			Key:        PlanKey,
			Title:      "Plan",
			Width:      2,
			Value:      func(o proto.Organization) string { return o.Plan.String() },
			Compare:    virtual.CompareString(func(o proto.Organization) string { return o.Plan.String() }),
			Searchable: true,
		},
		{
			Key:        UsersKey,
			Title:      "Users",
			Width:      2,
			Value:      virtual.Itoa(proto.Organization.NumUsers),
			Compare:    virtual.CompareOrdered(proto.Organization.NumUsers),
			DescFirst:  true,
			Searchable: true,
		},
		{
			Key:   InvitationsKey,
			Title: "Invitations",
			Width: 2,
			Value: virtual.Itoa(func(o proto.Organization) int { return o.InvitationsRemaining }),
			Compare: virtual.CompareOrdered(func(o proto.Organization) int {
				return o.InvitationsRemaining
			}),
			DescFirst:  true,
			Searchable: true,
		},
	}
}

// Users returns the columns of the users table.
func Users() virtual.Columns[proto.User] {
	return virtual.Columns[proto.User]{
		{
			Key:   NameKey,
			Title: "Name",
			Width: 5,
			Value: func(u proto.User) string {
				return u.FullName() + "\n" + u.Email
			},
			Compare:    virtual.CompareString(proto.User.FullName),
			Searchable: true,
			Terms: func(u proto.User) []string {
				return []string{u.FirstName, u.LastName, u.Email}
			},
		},
		{
			Key:        RoleKey,
			Title:      "Role",
			Width:      2,
			Value:      func(u proto.User) string { return u.Role.String() },
			Compare:    virtual.CompareString(func(u proto.User) string { return u.Role.String() }),
			Searchable: true,
		},
		{
			Key:        StatusKey,
			Title:      "Status",
			Width:      2,
			Value:      func(u proto.User) string { return u.Status.String() },
			Compare:    virtual.CompareString(func(u proto.User) string { return u.Status.String() }),
			Searchable: true,
		},
		{
			Key:   LastLoginKey,
			Title: "Last Login",
			Width: 3,
			Value: func(u proto.User) string {
				if u.LastLogin.IsZero() {
					return "-"
				}
				return u.LastLogin.Format("Jan 2, 2006")
			},
			Compare: func(a, b proto.User) int {
				return a.LastLogin.Compare(b.LastLogin)
			},
		},
		{
			Key:   ActionsKey,
			Title: "Actions",
			Width: 2,
			Value: func(proto.User) string { return "Edit  Remove" },
		},
	}
}

// ID formats an identifier the way it is displayed.
func ID(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}
