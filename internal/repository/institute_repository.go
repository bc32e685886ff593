package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

type InstituteRepository interface {
	GetAll(ctx context.Context) ([]*model.Institute, error)
	GetByID(ctx context.Context, id int) (*model.Institute, error)
	Create(ctx context.Context, inst *model.Institute) error
	Update(ctx context.Context, inst *model.Institute) error
}

type instituteRepository struct {
	pool *pgxpool.Pool
}

func NewInstituteRepository(pool *pgxpool.Pool) InstituteRepository {
	return &instituteRepository{pool: pool}
}

const instituteColumns = `id, name, address, focal_person, contact, agreement_date, rate_per_student, agreement_path, created_at, updated_at`

func scanInstitute(row interface{ Scan(...any) error }) (*model.Institute, error) {
	inst := &model.Institute{}
	err := row.Scan(&inst.ID, &inst.Name, &inst.Address, &inst.FocalPerson, &inst.Contact,
		&inst.AgreementDate, &inst.RatePerStudent, &inst.AgreementPath, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (r *instituteRepository) GetAll(ctx context.Context) ([]*model.Institute, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+instituteColumns+` FROM institutes ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	institutes := []*model.Institute{}
	for rows.Next() {
		inst, err := scanInstitute(rows)
		if err != nil {
			return nil, err
		}
		institutes = append(institutes, inst)
	}
	return institutes, rows.Err()
}

func (r *instituteRepository) GetByID(ctx context.Context, id int) (*model.Institute, error) {
	inst, err := scanInstitute(database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+instituteColumns+` FROM institutes WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return inst, nil
}

func (r *instituteRepository) Create(ctx context.Context, inst *model.Institute) error {
	query := `
		INSERT INTO institutes (name, address, focal_person, contact, agreement_date, rate_per_student, agreement_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		inst.Name, inst.Address, inst.FocalPerson, inst.Contact, inst.AgreementDate, inst.RatePerStudent, inst.AgreementPath,
	).Scan(&inst.ID, &inst.CreatedAt, &inst.UpdatedAt)
	return translate(err)
}

func (r *instituteRepository) Update(ctx context.Context, inst *model.Institute) error {
	query := `
		UPDATE institutes
		SET name = $1, address = $2, focal_person = $3, contact = $4, agreement_date = $5,
		    rate_per_student = $6, agreement_path = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
		RETURNING updated_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		inst.Name, inst.Address, inst.FocalPerson, inst.Contact, inst.AgreementDate, inst.RatePerStudent, inst.AgreementPath, inst.ID,
	).Scan(&inst.UpdatedAt)
	return translate(err)
}
