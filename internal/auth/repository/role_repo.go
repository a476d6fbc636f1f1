package repository

import (
	"context"
	"database/sql"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
)

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Grant records role for the user. Granting an existing role is a no-op.
func (r *RoleRepository) Grant(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, string(role))
	return err
}

// RoleOf returns the effective role of the user. Admin wins over developer;
// users without a grant get RoleNone.
func (r *RoleRepository) RoleOf(ctx context.Context, userID string) (domain.Role, error) {
	query := `
		SELECT role
		FROM user_roles
		WHERE user_id = $1
		ORDER BY CASE role WHEN 'admin' THEN 0 ELSE 1 END
		LIMIT 1
	`

	var role string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return domain.RoleNone, nil
	}
	if err != nil {
		return domain.RoleNone, err
	}
	return domain.Role(role), nil
}
