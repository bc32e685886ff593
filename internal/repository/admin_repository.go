package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

// AdminRepository handles admin data access.
type AdminRepository interface {
	GetAll(ctx context.Context) ([]*model.Admin, error)
	GetByID(ctx context.Context, id int) (*model.Admin, error)
	GetByUserID(ctx context.Context, userID string) (*model.Admin, error)
	Create(ctx context.Context, a *model.Admin) error
	Update(ctx context.Context, a *model.Admin) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, name, designation, user_id, password_hash, institute_permission, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (*model.Admin, error) {
	a := &model.Admin{}
	var perms []int
	if err := row.Scan(&a.ID, &a.Name, &a.Designation, &a.UserID, &a.PasswordHash, &perms, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.InstitutePermissions = model.InstitutePermissions(perms)
	if a.InstitutePermissions == nil {
		a.InstitutePermissions = model.InstitutePermissions{}
	}
	return a, nil
}

func (r *adminRepository) GetAll(ctx context.Context) ([]*model.Admin, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []*model.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// GetByID retrieves an admin by ID.
func (r *adminRepository) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	a, err := scanAdmin(database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// GetByUserID retrieves an admin by their unique user identifier.
func (r *adminRepository) GetByUserID(ctx context.Context, userID string) (*model.Admin, error) {
	a, err := scanAdmin(database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE user_id = $1`, userID))
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// Create inserts a new admin.
func (r *adminRepository) Create(ctx context.Context, a *model.Admin) error {
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO admins (name, designation, user_id, password_hash, institute_permission)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		a.Name, a.Designation, a.UserID, a.PasswordHash, permissionArray(a.InstitutePermissions),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return translate(err)
}

// Update modifies an admin, including the stored password hash.
func (r *adminRepository) Update(ctx context.Context, a *model.Admin) error {
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE admins
		 SET name = $1, designation = $2, user_id = $3, password_hash = $4, institute_permission = $5,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6
		 RETURNING updated_at`,
		a.Name, a.Designation, a.UserID, a.PasswordHash, permissionArray(a.InstitutePermissions), a.ID,
	).Scan(&a.UpdatedAt)
	return translate(err)
}

// permissionArray never returns nil; pgx encodes a nil slice as NULL.
func permissionArray(p model.InstitutePermissions) []int {
	if p == nil {
		return []int{}
	}
	return []int(p)
}
