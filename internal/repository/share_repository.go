package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

// ShareRepository stores frozen institute share snapshots. There is no
// update: a saved share is never recomputed.
type ShareRepository interface {
	GetAll(ctx context.Context) ([]*model.InstituteShare, error)
	Create(ctx context.Context, s *model.InstituteShare) error
}

type shareRepository struct {
	pool *pgxpool.Pool
}

func NewShareRepository(pool *pgxpool.Pool) ShareRepository {
	return &shareRepository{pool: pool}
}

func (r *shareRepository) GetAll(ctx context.Context) ([]*model.InstituteShare, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		`SELECT id, institute_id, class_id, section_id, total_students, rate_per_student,
		        duration_months, total_amount, paid_date, created_at
		 FROM institute_share
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shares := []*model.InstituteShare{}
	for rows.Next() {
		s := &model.InstituteShare{}
		if err := rows.Scan(&s.ID, &s.InstituteID, &s.ClassID, &s.SectionID, &s.TotalStudents, &s.RatePerStudent,
			&s.DurationMonths, &s.TotalAmount, &s.PaidDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

func (r *shareRepository) Create(ctx context.Context, s *model.InstituteShare) error {
	query := `
		INSERT INTO institute_share (institute_id, class_id, section_id, total_students, rate_per_student,
		                             duration_months, total_amount, paid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		s.InstituteID, s.ClassID, s.SectionID, s.TotalStudents, s.RatePerStudent,
		s.DurationMonths, s.TotalAmount, s.PaidDate,
	).Scan(&s.ID, &s.CreatedAt)
	return translate(err)
}
