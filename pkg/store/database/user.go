package database

import (
	"context"

	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/db/models"
	"github.com/charmbracelet/soft-orgs/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// GetUsers implements store.UserStore.
func (*userStore) GetUsers(ctx context.Context, h db.Handler) ([]models.User, error) {
	var users []models.User
	query := h.Rebind("SELECT * FROM users ORDER BY organization_id, id;")
	err := h.SelectContext(ctx, &users, query)
	return users, db.WrapError(err)
}

// GetUsersByOrganizationID implements store.UserStore.
func (*userStore) GetUsersByOrganizationID(ctx context.Context, h db.Handler, orgID int64) ([]models.User, error) {
	var users []models.User
	query := h.Rebind("SELECT * FROM users WHERE organization_id = ? ORDER BY id;")
	err := h.SelectContext(ctx, &users, query, orgID)
	return users, db.WrapError(err)
}

// CountUsers implements store.UserStore.
func (*userStore) CountUsers(ctx context.Context, h db.Handler) (int64, error) {
	var n int64
	err := h.GetContext(ctx, &n, "SELECT COUNT(*) FROM users;")
	return n, db.WrapError(err)
}

// CreateUsers implements store.UserStore.
func (*userStore) CreateUsers(ctx context.Context, h db.Handler, users []models.User) error {
	for len(users) > 0 {
		n := min(len(users), batchSize)
		values := make([]interface{}, 0, n*9)
		for _, u := range users[:n] {
			values = append(values, u.OrganizationID, u.ID, u.FirstName, u.LastName, u.Email,
				u.Role, u.Status, u.CreatedAt, u.LastLogin)
		}
		query := h.Rebind(`INSERT INTO users (organization_id, id, first_name, last_name, email, role, status, created_at, last_login)
			VALUES ` + placeholders(n, 9) + ";")
		if _, err := h.ExecContext(ctx, query, values...); err != nil {
			return db.WrapError(err)
		}
		users = users[n:]
	}
	return nil
}
