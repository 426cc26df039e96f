package store

import (
	"context"

	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/db/models"
)

// OrganizationStore is an interface for managing organizations.
type OrganizationStore interface {
	GetOrganizations(ctx context.Context, h db.Handler) ([]models.Organization, error)
	GetOrganizationByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error)
	CountOrganizations(ctx context.Context, h db.Handler) (int64, error)
	CreateOrganizations(ctx context.Context, h db.Handler, orgs []models.Organization) error
	DeleteOrganizations(ctx context.Context, h db.Handler) error
}

// UserStore is an interface for managing the users of organizations.
type UserStore interface {
	// GetUsers returns every user ordered by organization and id.
	GetUsers(ctx context.Context, h db.Handler) ([]models.User, error)
	GetUsersByOrganizationID(ctx context.Context, h db.Handler, orgID int64) ([]models.User, error)
	CountUsers(ctx context.Context, h db.Handler) (int64, error)
	CreateUsers(ctx context.Context, h db.Handler, users []models.User) error
}

// Store is an interface for managing organizations and their users.
type Store interface {
	OrganizationStore
	UserStore
}
