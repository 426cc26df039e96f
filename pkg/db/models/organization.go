package models

import "time"

// Organization is a database model for an organization.
type Organization struct {
	ID                   int64     `db:"id"`
	CompanyName          string    `db:"company_name"`
	AdminName            string    `db:"admin_name"`
	UserCount            int       `db:"user_count"`
	InvitationsRemaining int       `db:"invitations_remaining"`
	Plan                 string    `db:"plan"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}
