package models

import "time"

// User is a database model for a member of an organization. ID is unique
// within the organization.
type User struct {
	OrganizationID int64     `db:"organization_id"`
	ID             int64     `db:"id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Email          string    `db:"email"`
	Role           string    `db:"role"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	LastLogin      time.Time `db:"last_login"`
}
