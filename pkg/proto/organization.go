package proto

import (
	"errors"
	"time"
)

// ErrOrganizationNotFound is returned when an organization does not exist.
var ErrOrganizationNotFound = errors.New("organization not found")

// User is a member of an organization.
type User struct {
	// ID is unique within the owning organization.
	ID        int64     `json:"id" yaml:"id"`
	FirstName string    `json:"first_name" yaml:"first_name"`
	LastName  string    `json:"last_name" yaml:"last_name"`
	Email     string    `json:"email" yaml:"email"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	LastLogin time.Time `json:"last_login" yaml:"last_login"`
	Role      Role      `json:"role" yaml:"role"`
	Status    Status    `json:"status" yaml:"status"`
}

// FullName returns the user's first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Organization is a customer account and the users it owns.
type Organization struct {
	ID          int64  `json:"id" yaml:"id"`
	CompanyName string `json:"company_name" yaml:"company_name"`
	AdminName   string `json:"admin_name" yaml:"admin_name"`
	// UserCount is informational. Use NumUsers for the number of users.
	UserCount            int    `json:"user_count" yaml:"user_count"`
	InvitationsRemaining int    `json:"invitations_remaining" yaml:"invitations_remaining"`
	Plan                 Plan   `json:"plan" yaml:"plan"`
	Users                []User `json:"users,omitempty" yaml:"users,omitempty"`
}

// NumUsers returns the number of users that belong to the organization.
func (o Organization) NumUsers() int {
	return len(o.Users)
}

// User returns the user with the given id.
func (o Organization) User(id int64) (User, bool) {
	for _, u := range o.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindOrganization returns the organization with the given id.
func FindOrganization(orgs []Organization, id int64) (Organization, error) {
	for _, o := range orgs {
		if o.ID == id {
			return o, nil
		}
	}
	return Organization{}, ErrOrganizationNotFound
}
