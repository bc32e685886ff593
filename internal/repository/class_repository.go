package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

// ClassRepository handles class data access.
type ClassRepository interface {
	GetAll(ctx context.Context) ([]*model.Class, error)
	// GetWithSections returns only classes that own at least one section.
	GetWithSections(ctx context.Context) ([]*model.Class, error)
	GetByID(ctx context.Context, id int) (*model.Class, error)
	Create(ctx context.Context, c *model.Class) error
	Update(ctx context.Context, c *model.Class) error
}

type classRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) ClassRepository {
	return &classRepository{pool: pool}
}

func (r *classRepository) GetAll(ctx context.Context) ([]*model.Class, error) {
	return r.list(ctx, `SELECT id, name, agency, created_at, updated_at FROM classes ORDER BY name ASC, id ASC`)
}

func (r *classRepository) GetWithSections(ctx context.Context) ([]*model.Class, error) {
	return r.list(ctx,
		`SELECT c.id, c.name, c.agency, c.created_at, c.updated_at
		 FROM classes c
		 WHERE EXISTS (SELECT 1 FROM sections s WHERE s.class_id = c.id)
		 ORDER BY c.name ASC, c.id ASC`)
}

func (r *classRepository) list(ctx context.Context, query string) ([]*model.Class, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []*model.Class{}
	for rows.Next() {
		c := &model.Class{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Agency, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// GetByID retrieves a class by its ID.
func (r *classRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, agency, created_at, updated_at FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Agency, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// Create inserts a new class.
func (r *classRepository) Create(ctx context.Context, c *model.Class) error {
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO classes (name, agency)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Agency,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translate(err)
}

// Update modifies an existing class.
func (r *classRepository) Update(ctx context.Context, c *model.Class) error {
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE classes SET name = $1, agency = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3
		 RETURNING updated_at`,
		c.Name, c.Agency, c.ID,
	).Scan(&c.UpdatedAt)
	return translate(err)
}
