package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

type AssignmentRepository interface {
	GetAll(ctx context.Context) ([]*model.Assignment, error)
	GetByID(ctx context.Context, id int) (*model.Assignment, error)
	// FindByTriple returns ErrNotFound when the triple was never assigned.
	FindByTriple(ctx context.Context, instituteID, classID, sectionID int) (*model.Assignment, error)
	Create(ctx context.Context, a *model.Assignment) error
	Update(ctx context.Context, a *model.Assignment) error
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

const assignmentColumns = `id, institute_id, class_id, section_id, total_students, created_at, updated_at`

func scanAssignment(row interface{ Scan(...any) error }) (*model.Assignment, error) {
	a := &model.Assignment{}
	if err := row.Scan(&a.ID, &a.InstituteID, &a.ClassID, &a.SectionID, &a.TotalStudents, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) GetAll(ctx context.Context) ([]*model.Assignment, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []*model.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	a, err := scanAssignment(database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (r *assignmentRepository) FindByTriple(ctx context.Context, instituteID, classID, sectionID int) (*model.Assignment, error) {
	a, err := scanAssignment(database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments
		 WHERE institute_id = $1 AND class_id = $2 AND section_id = $3`,
		instituteID, classID, sectionID))
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (r *assignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	query := `
		INSERT INTO assignments (institute_id, class_id, section_id, total_students)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		a.InstituteID, a.ClassID, a.SectionID, a.TotalStudents,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return translate(err)
}

func (r *assignmentRepository) Update(ctx context.Context, a *model.Assignment) error {
	query := `
		UPDATE assignments
		SET institute_id = $1, class_id = $2, section_id = $3, total_students = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		a.InstituteID, a.ClassID, a.SectionID, a.TotalStudents, a.ID,
	).Scan(&a.UpdatedAt)
	return translate(err)
}
