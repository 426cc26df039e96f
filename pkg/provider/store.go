package provider

import (
	"context"
	"fmt"

	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/db/models"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/store"
)

type storeProvider struct {
	db    *db.DB
	store store.Store
}

// FromStore returns a provider reading organizations from the database.
func FromStore(dbx *db.DB, s store.Store) Provider {
	return &storeProvider{db: dbx, store: s}
}

// Organizations implements Provider.
func (p *storeProvider) Organizations(ctx context.Context) ([]proto.Organization, error) {
	var orgs []proto.Organization
	err := p.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := p.store.GetOrganizations(ctx, tx)
		if err != nil {
			return fmt.Errorf("get organizations: %w", err)
		}
		users, err := p.store.GetUsers(ctx, tx)
		if err != nil {
			return fmt.Errorf("get users: %w", err)
		}

		byOrg := make(map[int64][]proto.User, len(ms))
		for _, u := range users {
			pu, err := userFromModel(u)
			if err != nil {
				return err
			}
			byOrg[u.OrganizationID] = append(byOrg[u.OrganizationID], pu)
		}

		orgs = make([]proto.Organization, 0, len(ms))
		for _, m := range ms {
			org, err := organizationFromModel(m)
			if err != nil {
				return err
			}
			org.Users = byOrg[m.ID]
			orgs = append(orgs, org)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func organizationFromModel(m models.Organization) (proto.Organization, error) {
	plan, err := proto.ParsePlan(m.Plan)
	if err != nil {
		return proto.Organization{}, fmt.Errorf("organization %d: %w", m.ID, err)
	}
	return proto.Organization{
		ID:                   m.ID,
		CompanyName:          m.CompanyName,
		AdminName:            m.AdminName,
		UserCount:            m.UserCount,
		InvitationsRemaining: m.InvitationsRemaining,
		Plan:                 plan,
	}, nil
}

func userFromModel(m models.User) (proto.User, error) {
	role, err := proto.ParseRole(m.Role)
	if err != nil {
		return proto.User{}, fmt.Errorf("user %d/%d: %w", m.OrganizationID, m.ID, err)
	}
	status, err := proto.ParseStatus(m.Status)
	if err != nil {
		return proto.User{}, fmt.Errorf("user %d/%d: %w", m.OrganizationID, m.ID, err)
	}
	return proto.User{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		LastLogin: m.LastLogin,
		Role:      role,
		Status:    status,
	}, nil
}

// Save replaces the organizations stored in the database with orgs.
func Save(ctx context.Context, dbx *db.DB, s store.Store, orgs []proto.Organization) error {
	ms := make([]models.Organization, len(orgs))
	var users []models.User
	for i, o := range orgs {
		ms[i] = models.Organization{
			ID:                   o.ID,
			CompanyName:          o.CompanyName,
			AdminName:            o.AdminName,
			UserCount:            o.UserCount,
			InvitationsRemaining: o.InvitationsRemaining,
			Plan:                 o.Plan.String(),
		}
		for _, u := range o.Users {
			users = append(users, models.User{
				OrganizationID: o.ID,
				ID:             u.ID,
				FirstName:      u.FirstName,
				LastName:       u.LastName,
				Email:          u.Email,
				Role:           u.Role.String(),
				Status:         u.Status.String(),
				CreatedAt:      u.CreatedAt,
				LastLogin:      u.LastLogin,
			})
		}
	}

	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := s.DeleteOrganizations(ctx, tx); err != nil {
			return fmt.Errorf("delete organizations: %w", err)
		}
		if err := s.CreateOrganizations(ctx, tx, ms); err != nil {
			return fmt.Errorf("create organizations: %w", err)
		}
		if err := s.CreateUsers(ctx, tx, users); err != nil {
			return fmt.Errorf("create users: %w", err)
		}
		return nil
	})
}
