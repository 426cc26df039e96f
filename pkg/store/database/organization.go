package database

import (
	"context"

	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/db/models"
	"github.com/charmbracelet/soft-orgs/pkg/store"
)

type orgStore struct{}

var _ store.OrganizationStore = (*orgStore)(nil)

// GetOrganizations implements store.OrganizationStore.
func (*orgStore) GetOrganizations(ctx context.Context, h db.Handler) ([]models.Organization, error) {
	var orgs []models.Organization
	query := h.Rebind("SELECT * FROM organizations ORDER BY id;")
	err := h.SelectContext(ctx, &orgs, query)
	return orgs, db.WrapError(err)
}

// GetOrganizationByID implements store.OrganizationStore.
func (*orgStore) GetOrganizationByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error) {
	var org models.Organization
	query := h.Rebind("SELECT * FROM organizations WHERE id = ?;")
	err := h.GetContext(ctx, &org, query, id)
	return org, db.WrapError(err)
}

// CountOrganizations implements store.OrganizationStore.
func (*orgStore) CountOrganizations(ctx context.Context, h db.Handler) (int64, error) {
	var n int64
	err := h.GetContext(ctx, &n, "SELECT COUNT(*) FROM organizations;")
	return n, db.WrapError(err)
}

// CreateOrganizations implements store.OrganizationStore.
func (*orgStore) CreateOrganizations(ctx context.Context, h db.Handler, orgs []models.Organization) error {
	for len(orgs) > 0 {
		n := min(len(orgs), batchSize)
		values := make([]interface{}, 0, n*6)
		for _, o := range orgs[:n] {
			values = append(values, o.ID, o.CompanyName, o.AdminName, o.UserCount, o.InvitationsRemaining, o.Plan)
		}
		query := h.Rebind(`INSERT INTO organizations (id, company_name, admin_name, user_count, invitations_remaining, plan)
			VALUES ` + placeholders(n, 6) + ";")
		if _, err := h.ExecContext(ctx, query, values...); err != nil {
			return db.WrapError(err)
		}
		orgs = orgs[n:]
	}
	return nil
}

// DeleteOrganizations implements store.OrganizationStore. Users are deleted
// along with their organization.
func (*orgStore) DeleteOrganizations(ctx context.Context, h db.Handler) error {
	if _, err := h.ExecContext(ctx, "DELETE FROM users;"); err != nil {
		return db.WrapError(err)
	}
	_, err := h.ExecContext(ctx, "DELETE FROM organizations;")
	return db.WrapError(err)
}
