package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

type SectionRepository interface {
	GetAll(ctx context.Context) ([]*model.Section, error)
	GetByClass(ctx context.Context, classID int) ([]*model.Section, error)
	GetByID(ctx context.Context, id int) (*model.Section, error)
	Create(ctx context.Context, s *model.Section) error
	Update(ctx context.Context, s *model.Section) error
	// CountReferences counts assignments, register entries and saved shares
	// that point at the section.
	CountReferences(ctx context.Context, id int) (int, error)
}

type sectionRepository struct {
	pool *pgxpool.Pool
}

func NewSectionRepository(pool *pgxpool.Pool) SectionRepository {
	return &sectionRepository{pool: pool}
}

const sectionColumns = `id, class_id, name, start_date, end_date, duration_months, created_at, updated_at`

func (r *sectionRepository) GetAll(ctx context.Context) ([]*model.Section, error) {
	return r.list(ctx, `SELECT `+sectionColumns+` FROM sections ORDER BY start_date ASC, id ASC`)
}

func (r *sectionRepository) GetByClass(ctx context.Context, classID int) ([]*model.Section, error) {
	return r.list(ctx, `SELECT `+sectionColumns+` FROM sections WHERE class_id = $1 ORDER BY start_date ASC, id ASC`, classID)
}

func (r *sectionRepository) list(ctx context.Context, query string, args ...any) ([]*model.Section, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []*model.Section{}
	for rows.Next() {
		s := &model.Section{}
		if err := rows.Scan(&s.ID, &s.ClassID, &s.Name, &s.StartDate, &s.EndDate, &s.DurationMonths, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

func (r *sectionRepository) GetByID(ctx context.Context, id int) (*model.Section, error) {
	s := &model.Section{}
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.ClassID, &s.Name, &s.StartDate, &s.EndDate, &s.DurationMonths, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

func (r *sectionRepository) Create(ctx context.Context, s *model.Section) error {
	query := `
		INSERT INTO sections (class_id, name, start_date, end_date, duration_months)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		s.ClassID, s.Name, s.StartDate, s.EndDate, s.DurationMonths,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translate(err)
}

func (r *sectionRepository) Update(ctx context.Context, s *model.Section) error {
	query := `
		UPDATE sections
		SET class_id = $1, name = $2, start_date = $3, end_date = $4, duration_months = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		s.ClassID, s.Name, s.StartDate, s.EndDate, s.DurationMonths, s.ID,
	).Scan(&s.UpdatedAt)
	return translate(err)
}

func (r *sectionRepository) CountReferences(ctx context.Context, id int) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM assignments WHERE section_id = $1)
		     + (SELECT COUNT(*) FROM income_register WHERE section_id = $1)
		     + (SELECT COUNT(*) FROM expense_register WHERE section_id = $1)
		     + (SELECT COUNT(*) FROM institute_share WHERE section_id = $1)
	`
	var n int
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&n)
	return n, err
}
